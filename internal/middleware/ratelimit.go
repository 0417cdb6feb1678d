package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// client tracks one caller's request count inside the current window.
type client struct {
	lastSeen time.Time
	count    int
}

// staleSweepThreshold is the map size above which expired entries are
// dropped before handling the next request.
const staleSweepThreshold = 1024

// In-memory store for rate limiting. The API serves a single public dataset
// from one process, so a per-instance limiter is enough; a multi-instance
// deployment would need Redis or another shared store.
var (
	clients         = make(map[string]*client)
	window          = time.Minute
	limit           = 60
	rateLimiterLock sync.Mutex
)

// RateLimiter limits the number of requests per client IP.
//
// Behavior:
//   - Allows up to `limit` requests per `window` (default: 60 per minute).
//   - Identifies clients by their IP address.
//   - Replies 429 with a Retry-After header once the limit is exceeded.
//   - Entries idle for a full window are swept once the map passes
//     staleSweepThreshold, so one-off callers do not accumulate.
//
// Usage:
//
//	router := gin.New()
//	router.Use(middleware.RateLimiter())
func RateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		rateLimiterLock.Lock()
		if len(clients) > staleSweepThreshold {
			for k, v := range clients {
				if now.Sub(v.lastSeen) > window {
					delete(clients, k)
				}
			}
		}
		cl, ok := clients[ip]
		if !ok || now.Sub(cl.lastSeen) > window {
			cl = &client{lastSeen: now, count: 1}
			clients[ip] = cl
		} else {
			cl.count++
			cl.lastSeen = now
		}
		exceeded := cl.count > limit
		rateLimiterLock.Unlock()

		if exceeded {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
