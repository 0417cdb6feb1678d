package main

//
//  @title           NYC Yellow Taxi Dashboard API
//  @version         1.0
//  @description     Loads NYC yellow-taxi trip records from the city open data portal and serves dashboard aggregates.
//  @termsOfService  https://github.com/anniepuy/nyc-yellow-taxi-dashboard
//  @contact.name    API Support
//  @contact.url     https://github.com/anniepuy/nyc-yellow-taxi-dashboard
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        trips
//  @tag.description Loaded trip rows and on-demand reloads
//
//  @tag.name        stats
//  @tag.description Dashboard aggregations over the loaded window
//
//  @tag.name        model
//  @tag.description Fare regression fitted on the loaded trips
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/config"
	_ "github.com/anniepuy/nyc-yellow-taxi-dashboard/docs" // swagger docs
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/app"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/ingestion"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/logger"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/stats"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown gracefully terminates the HTTP server and cleans up resources
// when an OS interrupt signal (SIGINT, SIGTERM) is received.
//
// Parameters:
//   - ctx (context.Context): A context with timeout for graceful shutdown.
//   - server (*http.Server): The HTTP server instance to shut down.
//   - cleanup (func()): Cleanup callback to release resources (e.g., the refresh scheduler).
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runFetch performs a one-shot load of the configured window and logs the
// run statistics plus headline figures. Useful for verifying portal access
// and data quality without starting the API.
func runFetch(ctx context.Context, rowLimit int) error {
	cfg := config.AppConfig

	client := app.NewSodaClient(cfg)
	loader := ingestion.NewLoader(client, cfg.Soda.TripsDataset, cfg.Soda.ZonesDataset, cfg.Loader.DropNegativeFares)

	if rowLimit <= 0 {
		rowLimit = cfg.Loader.RowLimit
	}
	window := ingestion.Window{Start: cfg.Loader.WindowStart, End: cfg.Loader.WindowEnd}

	fetchCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	table, loadStats, err := loader.Load(fetchCtx, window, rowLimit)
	if err != nil {
		return err
	}

	sum := stats.Summarize(table)
	logger.L().Info().
		Int("fetched", loadStats.Fetched).
		Int("kept", loadStats.Kept).
		Int("dropped", loadStats.Dropped).
		Interface("drop_reasons", loadStats.DropReasons).
		Bool("truncated", loadStats.TruncatedAtN).
		Int64("total_trips", sum.TotalTrips).
		Float64("avg_fare", sum.AvgFare).
		Float64("avg_distance", sum.AvgDistance).
		Msg("fetch completed")
	return nil
}

// main is the entry point of the dashboard backend.
//
// Modes (selected via --mode flag):
//   - api:   Loads the configured window and serves the dashboard REST API.
//   - fetch: One-shot load; logs LoadStats and the summary, then exits.
//
// Flags:
//   - --mode:  Execution mode ("api" or "fetch"). Default: "api".
//   - --limit: Row cap override for fetch mode (0 = ROW_LIMIT from config).
//   - --port:  Port for the API server. Defaults to value from config (SERVER_PORT).
func main() {
	ctx := context.Background()

	// Load configuration from environment or .env file
	config.LoadConfig()

	// Initialize JSON logger
	logger.Init()

	// Parse CLI flags (override config defaults if provided)
	mode := flag.String("mode", "api", "Mode: api or fetch")
	limit := flag.Int("limit", 0, "Row cap override for fetch mode (0 = ROW_LIMIT)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "fetch":
		// One-shot load: verify the portal and report data quality
		logger.L().Info().Msg("running one-shot fetch")
		if err := runFetch(ctx, *limit); err != nil {
			logger.L().Fatal().Err(err).Msg("fetch failed")
		}

	case "api":
		// API mode: start the HTTP server
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
