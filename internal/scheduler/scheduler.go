// Package scheduler runs the periodic snapshot refresh.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/logger"
)

// refreshTimeout bounds one scheduled reload.
const refreshTimeout = 2 * time.Minute

// Refresher is the slice of the dashboard service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context) (models.LoadStats, error)
}

// Scheduler periodically refreshes the trip snapshot from the data portal.
// A failed run leaves the previous snapshot serving and is retried on the
// next tick.
type Scheduler struct {
	scheduler *gocron.Scheduler
	svc       Refresher
	interval  time.Duration
}

// New creates a Scheduler. An interval of zero or less disables scheduling.
func New(svc Refresher, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		svc:       svc,
		interval:  interval,
	}
}

// Start registers the refresh job and starts the scheduler in the background.
func (s *Scheduler) Start() error {
	log := logger.Component("scheduler")

	if s.interval <= 0 {
		log.Info().Msg("periodic refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		start := time.Now()
		loadStats, err := s.svc.Refresh(ctx)
		if err != nil {
			log.Error().Err(err).Msg("scheduled refresh failed")
			return
		}
		log.Info().
			Int("fetched", loadStats.Fetched).
			Int("kept", loadStats.Kept).
			Int("dropped", loadStats.Dropped).
			Dur("elapsed", time.Since(start)).
			Msg("scheduled refresh done")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Info().Dur("interval", s.interval).Msg("periodic refresh scheduled")
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
