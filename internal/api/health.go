package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints for the service.
//
// Responsibilities:
//   - /healthz: Basic liveness probe (always returns 200 OK).
//   - /readyz: Readiness probe (depends on upstream reachability).
type HealthHandler struct {
	ping func(ctx context.Context) error // Checks that the market endpoint is reachable
}

// NewHealthHandler constructs a HealthHandler with the provided ping function.
//
// Parameters:
//   - ping (func(context.Context) error): Used to check whether the primary
//     upstream data source is reachable. May be nil, in which case /readyz
//     always reports ready.
//
// Returns:
//   - *HealthHandler: A new handler instance.
func NewHealthHandler(ping func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Register mounts the health and readiness endpoints into the provided Gin router.
//
// Routes:
//   - GET /healthz: Always returns 200 OK.
//   - GET /readyz: Returns 200 OK if the upstream ping succeeds, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/readyz", func(c *gin.Context) {
		if h.ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			if h.ping(ctx) != nil {
				c.JSON(503, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
