package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/travvip/backend/internal/application/crm"
)

// DashboardHandler serves the aggregated workspace statistics
type DashboardHandler struct {
	BaseHandler
	dashboardService *crm.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *crm.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/stats", h.Stats)
}

// Stats returns query counts by status, follow-up buckets and recent activity
func (h *DashboardHandler) Stats(c *gin.Context) {
	_, orgID, ok := h.orgScope(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), orgID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}
