// Package store holds the trip table between loads. The table lives only
// in memory: every refresh builds a complete new snapshot and swaps it in
// whole, and nothing is ever written to disk.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/model"
)

// ErrEmpty is returned when no snapshot has been loaded yet.
var ErrEmpty = errors.New("store: no snapshot loaded")

// Snapshot is one complete load result: the normalized table, the loader's
// run statistics, the fare model fitted over that exact table (nil when the
// fit failed), and the time the swap happened.
//
// A snapshot is immutable once stored. Readers share the table's backing
// array and must treat it as read-only.
type Snapshot struct {
	Table    models.TripTable
	Stats    models.LoadStats
	Model    *model.FareModel
	LoadedAt time.Time
}

// SnapshotStore holds the latest snapshot. Handlers read concurrently while
// refreshes swap in replacements; last write wins, and every snapshot a
// reader observes is internally consistent (table, stats, and model always
// come from the same load).
type SnapshotStore struct {
	mu  sync.RWMutex
	cur *Snapshot
}

// NewSnapshotStore returns an empty store; Current answers ErrEmpty until
// the first Replace.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Replace swaps in a new snapshot.
func (s *SnapshotStore) Replace(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = &snap
}

// Current returns the latest snapshot, or ErrEmpty when nothing has been
// loaded yet.
func (s *SnapshotStore) Current() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return Snapshot{}, ErrEmpty
	}
	return *s.cur, nil
}

// LoadedAt reports when the current snapshot was stored; ok is false while
// the store is still empty.
func (s *SnapshotStore) LoadedAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return time.Time{}, false
	}
	return s.cur.LoadedAt, true
}
