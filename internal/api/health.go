package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on a loaded snapshot).
type HealthHandler struct {
	ready func() error // nil error means a snapshot is loaded and queryable
}

// NewHealthHandler constructs a HealthHandler with the provided readiness
// check. Typically the check reports whether the dashboard service has a
// snapshot to serve.
func NewHealthHandler(ready func() error) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK once data is loaded, 503 with the
//     blocking reason while degraded.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness probe (just checks if the service is up)
	// @Summary      Liveness probe
	// @Description  Always returns OK if the service is running
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness probe (checks that a snapshot is loaded)
	// @Summary      Readiness probe
	// @Description  Returns ready once trip data has been loaded into memory
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.ready != nil {
			if err := h.ready(); err != nil {
				c.JSON(503, gin.H{"status": "degraded", "reason": err.Error()})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
