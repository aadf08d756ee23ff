package handlers

import (
	"net/http"

	"fleetwatch-backend/internal/services"
	"fleetwatch-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	dashboardService *services.DashboardService
}

func NewStatsHandler(dashboardService *services.DashboardService) *StatsHandler {
	return &StatsHandler{dashboardService: dashboardService}
}

// GetSummary returns device and reading counts across all sensor streams.
func (h *StatsHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetStatsSummary(c.Request.Context())
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve summary", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Summary retrieved successfully", summary)
}

// GetDevices lists the device IDs that have reported data.
func (h *StatsHandler) GetDevices(c *gin.Context) {
	devices, err := h.dashboardService.GetDeviceIDs(c.Request.Context())
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve devices", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Devices retrieved successfully", devices)
}

// GetDashboard returns the summary plus recent activity across streams.
func (h *StatsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.dashboardService.GetDashboardData(c.Request.Context())
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve dashboard", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}
