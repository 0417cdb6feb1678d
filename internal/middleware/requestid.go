package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key under which the request ID is stored.
const RequestIDKey = "request_id"

// requestIDHeader carries the ID between the dashboard frontend, any proxy
// in front of the API, and the response.
const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an identifier for log correlation.
//
// Behavior:
//   - Keeps an incoming X-Request-ID when the caller already set one.
//   - Mints a UUID (v4) otherwise.
//   - Stores the ID in the Gin context under RequestIDKey.
//   - Echoes the ID back in the X-Request-ID response header.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RequestID())
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)

		c.Next()
	}
}
