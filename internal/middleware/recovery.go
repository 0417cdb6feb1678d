package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/dto"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/logger"
)

// RecoveryMiddleware recovers from panics during request handling.
//
// Behavior:
//   - Logs the panic value and stack trace together with the request ID,
//     method, and path, so the crash can be matched to an access log line.
//   - Replies 500 with the standard JSON error body. The panic value stays
//     in the logs; the response carries only the generic message.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				rid, _ := c.Get(RequestIDKey)

				logger.L().Error().
					Str("request_id", toString(rid)).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Str("panic", fmt.Sprintf("%v", r)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse("Internal server error", nil))
			}
		}()

		c.Next()
	}
}
