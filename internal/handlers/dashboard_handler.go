package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sofia-edu/admin-service/internal/services"
	"github.com/sofia-edu/admin-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	service services.DashboardService
}

func NewDashboardHandler(service services.DashboardService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// GetStats returns the aggregated numbers the admin dashboard renders:
// student totals, per-plan counts, accuracy averages and the 7-day activity
// series.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		h.LogError(c, err, "Failed to assemble dashboard stats")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: fmt.Sprintf("Erro interno ao buscar estatísticas: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}
