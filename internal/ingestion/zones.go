package ingestion

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/soda"
)

// zoneColumns is the strict header expected from the taxi-zone lookup
// dataset when selecting locationid and borough.
var zoneColumns = []string{"locationid", "borough"}

// ZoneDirectory maps TLC location IDs to boroughs. Lookups during
// normalization race with periodic refreshes, so the map is swapped whole
// under a write lock.
type ZoneDirectory struct {
	mu   sync.RWMutex
	byID map[int64]string
}

// NewZoneDirectory returns an empty directory; every lookup resolves to
// "Unknown" until Replace is called.
func NewZoneDirectory() *ZoneDirectory {
	return &ZoneDirectory{byID: map[int64]string{}}
}

// Replace swaps in a fresh id → borough map.
func (z *ZoneDirectory) Replace(byID map[int64]string) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.byID = byID
}

// Borough resolves a location ID, falling back to "Unknown" for IDs outside
// the lookup table (the TLC reserves 264/265 for unknown zones, and trip
// records occasionally carry IDs never published).
func (z *ZoneDirectory) Borough(id int64) string {
	z.mu.RLock()
	defer z.mu.RUnlock()
	if b, ok := z.byID[id]; ok && b != "" {
		return b
	}
	return "Unknown"
}

// Len reports how many location IDs are loaded.
func (z *ZoneDirectory) Len() int {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return len(z.byID)
}

// fetchZoneMap pulls the taxi-zone lookup table and builds the id → borough
// map. Rows with an unparseable location ID are skipped; the lookup table is
// enrichment, not trip data, so one bad row should not fail a load.
func fetchZoneMap(ctx context.Context, src RowSource, dataset string) (map[int64]string, error) {
	rs, err := src.FetchRows(ctx, dataset, soda.Query{
		Select: zoneColumns,
		Order:  "locationid",
	})
	if err != nil {
		return nil, fmt.Errorf("fetch zones: %w", err)
	}

	if len(rs.Columns) != len(zoneColumns) {
		return nil, fmt.Errorf("%w: zone header has %d columns, expected %d", soda.ErrMalformedResponse, len(rs.Columns), len(zoneColumns))
	}
	for i, c := range rs.Columns {
		if strings.TrimSpace(c) != zoneColumns[i] {
			return nil, fmt.Errorf("%w: zone header col %d is %q, expected %q", soda.ErrMalformedResponse, i+1, c, zoneColumns[i])
		}
	}

	byID := make(map[int64]string, len(rs.Records))
	for _, rec := range rs.Records {
		id, err := coerceInt(rec[0])
		if err != nil || id == 0 {
			continue
		}
		byID[id] = strings.TrimSpace(rec[1])
	}
	return byID, nil
}
