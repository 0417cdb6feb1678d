package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/logger"
)

// probePaths are logged at debug level so scraped health checks do not
// drown out the dashboard traffic at the default info level.
var probePaths = map[string]bool{
	"/healthz": true,
	"/readyz":  true,
}

// RequestLogger logs one structured line per request.
//
// Behavior:
//   - Captures method, path, and raw query before handling. The query is
//     logged because the dashboard endpoints carry their filters there.
//   - After the handler runs, logs status, latency in ms, client IP, and
//     the request_id injected by RequestID().
//   - Logs 4xx at warn and 5xx at error so failures stand out; health
//     probes log at debug.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RequestLogger())
//
// Example log output:
//
//	request_id=123e4567-e89b-12d3-a456-426614174000 method=GET path=/api/v1/trips query=from=2023-01-01&limit=50 status=200 latency_ms=4
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		logger.L().WithLevel(levelFor(status, path)).
			Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func levelFor(status int, path string) zerolog.Level {
	switch {
	case probePaths[path]:
		return zerolog.DebugLevel
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
