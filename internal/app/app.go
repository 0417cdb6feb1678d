package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/config"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/api"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/ingestion"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/logger"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/scheduler"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/service"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/store"
)

// initialLoadTimeout bounds the synchronous load performed at startup.
const initialLoadTimeout = 2 * time.Minute

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the SODA client for the configured data portal.
//   - Wires the trip loader, snapshot store, and dashboard service.
//   - Performs the initial synchronous load (soft-fail: on error the
//     service starts degraded, /readyz answers 503, and the scheduler
//     keeps retrying).
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Starts the periodic refresh scheduler.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Data portal client and the loader on top of it
	client := NewSodaClient(cfg)
	loader := ingestion.NewLoader(client, cfg.Soda.TripsDataset, cfg.Soda.ZonesDataset, cfg.Loader.DropNegativeFares)

	// In-memory snapshot store (the table is never persisted)
	snapshots := store.NewSnapshotStore()

	// Service layer (business logic)
	window := ingestion.Window{Start: cfg.Loader.WindowStart, End: cfg.Loader.WindowEnd}
	svc := service.NewDashboardService(loader, snapshots, window, cfg.Loader.RowLimit)

	// Initial synchronous load. A portal outage at boot must not kill the
	// process: queries answer 404 until a refresh succeeds.
	ctx, cancel := context.WithTimeout(context.Background(), initialLoadTimeout)
	defer cancel()
	if _, err := svc.Refresh(ctx); err != nil {
		logger.L().Warn().Err(err).Msg("initial load failed, starting degraded")
	}

	// HTTP handler layer and router
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	// Register health and readiness probes; ready means a snapshot is loaded
	healthHandler := api.NewHealthHandler(func() error {
		if _, ok := svc.LoadedAt(); !ok {
			return service.ErrNoData
		}
		return nil
	})
	healthHandler.Register(router)

	// Periodic refresh
	sched := scheduler.New(svc, time.Duration(cfg.Loader.RefreshIntervalMinutes)*time.Minute)
	if err := sched.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start refresh scheduler: %w", err)
	}

	// Cleanup resources on shutdown
	cleanup := func() {
		sched.Stop()
	}

	return router, cleanup, nil
}
