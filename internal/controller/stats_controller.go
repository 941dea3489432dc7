package controller

import (
	"practicehub/internal/service"
	"practicehub/pkg/utils/response"

	"github.com/gin-gonic/gin"
)

// StatsController handles the public statistics endpoint.
type StatsController struct {
	statsService *service.StatsService
}

// NewStatsController creates a new StatsController.
func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// Get handles GET /stats.
func (h *StatsController) Get(c *gin.Context) {
	stats, err := h.statsService.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, stats)
}
