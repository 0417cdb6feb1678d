package api

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/middleware"
)

// requestTimeout bounds ordinary read requests. Manual refreshes run on
// their own detached context (see Handler.Refresh).
const requestTimeout = 15 * time.Second

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, RateLimiter, CORS).
//   - Adds request timeout handling.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(),
	)

	// ─── CORS ─────────────────────────────────────
	// The dashboard frontend is served from a separate origin.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	// ─── Timeout ──────────────────────────────────
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/trips", handler.GetTrips)
		v1.GET("/model/fare", handler.PredictFare)
		v1.POST("/refresh", handler.Refresh)

		statsGroup := v1.Group("/stats")
		{
			statsGroup.GET("/summary", handler.GetSummary)
			statsGroup.GET("/fare-by-borough", handler.GetFareByBorough)
			statsGroup.GET("/passengers-by-borough", handler.GetPassengersByBorough)
			statsGroup.GET("/distance-histogram", handler.GetDistanceHistogram)
			statsGroup.GET("/top-pickups", handler.GetTopPickups)
		}
	}

	return router
}
