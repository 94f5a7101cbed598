package handler

import (
	"github.com/gin-gonic/gin"

	"miklean/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/v1/stats
// @Summary Dashboard summary
// @Description Client counts, upcoming visits, uninvoiced work and outstanding invoices for the business
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=domain.Stats}
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	businessID, ok := businessContext(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), businessID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
