package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usemate/statsbot/internal/domain/dto"
	"github.com/usemate/statsbot/internal/stats"
	"github.com/usemate/statsbot/internal/upstream"
)

// Handler provides HTTP handlers for the stats endpoints.
//
// Responsibilities:
//   - Trigger a snapshot computation with the request context
//   - Translate the snapshot into the response DTO
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc stats.Service
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (stats.Service): Aggregation service producing snapshots.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc stats.Service) *Handler {
	return &Handler{svc: svc}
}

// GetStats handles GET /api/v1/stats requests.
//
// Responses:
//   - 200 OK: Returns StatsResponse with all current statistics and 24h diffs.
//   - 502 Bad Gateway: An upstream data source failed; no partial snapshot exists.
//   - 500 Internal Server Error: Any other failure during aggregation.
func (h *Handler) GetStats(c *gin.Context) {
	snapshot, err := h.svc.ComputeSnapshot(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, upstream.ErrUnavailable) {
			status = http.StatusBadGateway
		}
		c.JSON(status, dto.NewErrorResponse("failed to compute stats", err))
		return
	}

	c.JSON(http.StatusOK, dto.NewStatsResponse(snapshot))
}
