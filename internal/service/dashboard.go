package service

import (
	"context"
	"errors"
	"time"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/ingestion"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/logger"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/model"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/stats"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/store"
)

var (
	// ErrNoData means no snapshot has been loaded yet, typically because the
	// initial load failed and no refresh has succeeded since.
	ErrNoData = errors.New("service: no data loaded")

	// ErrModelUnavailable means the current snapshot exists but its fare
	// model could not be fitted.
	ErrModelUnavailable = errors.New("service: fare model unavailable")
)

// DefaultPageSize is the trips page size when the request does not set one.
const DefaultPageSize = 100

// TripLoader fetches one window of trips. *ingestion.Loader satisfies it;
// tests substitute a stub.
type TripLoader interface {
	Load(ctx context.Context, w ingestion.Window, limit int) (models.TripTable, models.LoadStats, error)
}

// DashboardService defines the business logic behind the dashboard API:
// refreshing the snapshot from the data portal and answering queries
// against whatever snapshot is current.
type DashboardService interface {
	Refresh(ctx context.Context) (models.LoadStats, error)
	Trips(f stats.Filter, limit, offset int) (models.TripTable, int, error)
	Summary(f stats.Filter) (models.Summary, error)
	FareByBorough(f stats.Filter) ([]models.BoroughFare, error)
	PassengersByBorough(f stats.Filter) ([]models.BoroughPassengers, error)
	DistanceHistogram(f stats.Filter, bins int) ([]models.HistogramBin, error)
	TopPickupBoroughs(f stats.Filter, n int) ([]models.BoroughCount, error)
	PredictFare(distanceMiles float64) (models.FarePrediction, error)
	LoadedAt() (time.Time, bool)
}

type dashboardService struct {
	loader   TripLoader
	store    *store.SnapshotStore
	window   ingestion.Window
	rowLimit int
}

// NewDashboardService wires the service to its loader, snapshot store, and
// the configured load window and row cap.
func NewDashboardService(loader TripLoader, st *store.SnapshotStore, w ingestion.Window, rowLimit int) DashboardService {
	return &dashboardService{
		loader:   loader,
		store:    st,
		window:   w,
		rowLimit: rowLimit,
	}
}

// Refresh loads the configured window, fits the fare model over the result,
// and swaps the snapshot in atomically. On load failure the previous
// snapshot stays current, so queries keep serving the last good data.
//
// A failed model fit does not fail the refresh: the snapshot is stored with
// a nil model and PredictFare answers ErrModelUnavailable.
func (s *dashboardService) Refresh(ctx context.Context) (models.LoadStats, error) {
	table, loadStats, err := s.loader.Load(ctx, s.window, s.rowLimit)
	if err != nil {
		return loadStats, err
	}

	snap := store.Snapshot{
		Table:    table,
		Stats:    loadStats,
		LoadedAt: time.Now().UTC(),
	}
	if m, err := model.TrainFareModel(table); err != nil {
		log := logger.Component("service")
		log.Warn().Err(err).Int("kept", loadStats.Kept).Msg("fare model not fitted")
	} else {
		snap.Model = &m
	}

	s.store.Replace(snap)
	return loadStats, nil
}

func (s *dashboardService) snapshot() (store.Snapshot, error) {
	snap, err := s.store.Current()
	if errors.Is(err, store.ErrEmpty) {
		return store.Snapshot{}, ErrNoData
	}
	return snap, err
}

// Trips returns one page of filtered trips plus the total match count.
// limit <= 0 selects DefaultPageSize; offsets past the end yield an empty
// page with the total intact so clients can still render the pager.
func (s *dashboardService) Trips(f stats.Filter, limit, offset int) (models.TripTable, int, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, 0, err
	}

	matched := stats.Apply(snap.Table, f)
	total := len(matched)

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return models.TripTable{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *dashboardService) Summary(f stats.Filter) (models.Summary, error) {
	snap, err := s.snapshot()
	if err != nil {
		return models.Summary{}, err
	}
	return stats.Summarize(stats.Apply(snap.Table, f)), nil
}

func (s *dashboardService) FareByBorough(f stats.Filter) ([]models.BoroughFare, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return stats.AvgFareByBorough(stats.Apply(snap.Table, f)), nil
}

func (s *dashboardService) PassengersByBorough(f stats.Filter) ([]models.BoroughPassengers, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return stats.AvgPassengersByBorough(stats.Apply(snap.Table, f)), nil
}

func (s *dashboardService) DistanceHistogram(f stats.Filter, bins int) ([]models.HistogramBin, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return stats.DistanceHistogram(stats.Apply(snap.Table, f), bins), nil
}

func (s *dashboardService) TopPickupBoroughs(f stats.Filter, n int) ([]models.BoroughCount, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return stats.TopPickupBoroughs(stats.Apply(snap.Table, f), n), nil
}

// PredictFare evaluates the snapshot's fitted fare model at the given
// distance. The model always belongs to the same load as the table the
// other queries read.
func (s *dashboardService) PredictFare(distanceMiles float64) (models.FarePrediction, error) {
	snap, err := s.snapshot()
	if err != nil {
		return models.FarePrediction{}, err
	}
	if snap.Model == nil {
		return models.FarePrediction{}, ErrModelUnavailable
	}
	return snap.Model.Prediction(distanceMiles), nil
}

// LoadedAt reports when the current snapshot was loaded; ok is false until
// the first successful refresh.
func (s *dashboardService) LoadedAt() (time.Time, bool) {
	return s.store.LoadedAt()
}
