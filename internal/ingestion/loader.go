package ingestion

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/logger"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/soda"
)

// RowSource is the loader's only view of the data portal. *soda.Client
// satisfies it; tests substitute a fake.
type RowSource interface {
	FetchRows(ctx context.Context, dataset string, q soda.Query) (*soda.RowSet, error)
}

// Loader fetches one window of trip records, normalizes them into a typed
// table, and enriches pickup/dropoff boroughs from the zone directory.
//
// A Loader holds no result state: every Load round-trips to the portal, so
// repeated calls against an unchanged dataset return identical tables.
type Loader struct {
	src          RowSource
	tripsDataset string
	zonesDataset string
	zones        *ZoneDirectory

	// dropNegativeFares controls the disputed-rows policy: refunds and
	// voided trips carry negative fare_amount; by default they are kept.
	dropNegativeFares bool
}

// NewLoader wires a loader to its row source and dataset identifiers.
func NewLoader(src RowSource, tripsDataset, zonesDataset string, dropNegativeFares bool) *Loader {
	return &Loader{
		src:               src,
		tripsDataset:      tripsDataset,
		zonesDataset:      zonesDataset,
		zones:             NewZoneDirectory(),
		dropNegativeFares: dropNegativeFares,
	}
}

// Zones exposes the loader's zone directory (read-mostly; refreshed by Load).
func (l *Loader) Zones() *ZoneDirectory { return l.zones }

// Load fetches all trips with a pickup inside w, up to limit rows, and
// returns the normalized table plus per-run statistics.
//
// Behavior:
//   - Empty or inverted window: returns an empty table with no remote call.
//   - Trip rows and the zone lookup are fetched concurrently; either
//     failure fails the load (errors wrap soda.ErrRemoteUnavailable or
//     soda.ErrMalformedResponse and are matchable with errors.Is).
//   - The response header must match the selected columns exactly.
//   - Malformed rows never abort the load: they are dropped and counted
//     by reason in LoadStats.DropReasons.
//   - Window containment and the row cap are enforced locally even if the
//     portal misbehaves.
func (l *Loader) Load(ctx context.Context, w Window, limit int) (models.TripTable, models.LoadStats, error) {
	stats := models.LoadStats{
		WindowStart: w.Start,
		WindowEnd:   w.End,
		DropReasons: map[string]int{},
	}

	if w.IsEmpty() {
		return models.TripTable{}, stats, nil
	}

	log := logger.Component("loader")
	start := time.Now()
	log.Info().Str("window", w.String()).Int("limit", limit).Msg("load start")

	q := soda.Query{
		Select: tripColumns,
		Where: "tpep_pickup_datetime >= " + soda.TimeLiteral(w.Start) +
			" AND tpep_pickup_datetime < " + soda.TimeLiteral(w.End),
		Order: "tpep_pickup_datetime,tpep_dropoff_datetime",
		Limit: limit,
	}

	// The trip page and the zone lookup are independent requests; fetch them
	// concurrently and fail the load on the first error.
	var rs *soda.RowSet
	var zoneMap map[int64]string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rs, err = l.src.FetchRows(gctx, l.tripsDataset, q)
		return err
	})
	g.Go(func() error {
		var err error
		zoneMap, err = fetchZoneMap(gctx, l.src, l.zonesDataset)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Str("window", w.String()).Err(err).Msg("load failed")
		return nil, stats, err
	}

	l.zones.Replace(zoneMap)

	if err := validateTripColumns(rs.Columns); err != nil {
		log.Error().Str("window", w.String()).Err(err).Msg("load failed")
		return nil, stats, err
	}

	stats.Fetched = len(rs.Records)
	table := make(models.TripTable, 0, len(rs.Records))

	for _, rec := range rs.Records {
		if limit > 0 && len(table) >= limit {
			break
		}

		// Structural damage is a response-level problem, not a row anomaly.
		if len(rec) != len(tripColumns) {
			err := fmt.Errorf("%w: record has %d columns, expected %d", soda.ErrMalformedResponse, len(rec), len(tripColumns))
			log.Error().Str("window", w.String()).Err(err).Msg("load failed")
			return nil, stats, err
		}

		t, reason := normalizeRow(rec)
		if reason == "" && !w.Contains(t.PickupTime) {
			reason = dropOutsideWindow
		}
		if reason == "" && t.FareAmount < 0 {
			// Negative fares are refunds or voided meters. Counted either
			// way so a spike is visible; dropped only when configured.
			stats.SuspectFares++
			if l.dropNegativeFares {
				reason = dropNegativeFare
			}
		}
		if reason != "" {
			stats.DropReasons[reason]++
			continue
		}

		t.PUBorough = l.zones.Borough(t.PULocationID)
		t.DOBorough = l.zones.Borough(t.DOLocationID)
		table = append(table, t)
	}

	stats.Kept = len(table)
	for _, n := range stats.DropReasons {
		stats.Dropped += n
	}
	stats.TruncatedAtN = limit > 0 && stats.Kept == limit

	log.Info().
		Str("window", w.String()).
		Int("fetched", stats.Fetched).
		Int("kept", stats.Kept).
		Int("dropped", stats.Dropped).
		Dur("elapsed", time.Since(start)).
		Msg("load done")

	return table, stats, nil
}
