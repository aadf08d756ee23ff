package handlers

import (
	"net/http"
	"strconv"

	"fleetwatch-backend/internal/repository"
	"fleetwatch-backend/internal/services"
	"fleetwatch-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AlertHandler struct {
	alertService *services.AlertService
	statsService *services.AlertStatsService
	validator    *validator.Validate
}

func NewAlertHandler(alertService *services.AlertService, statsService *services.AlertStatsService) *AlertHandler {
	return &AlertHandler{
		alertService: alertService,
		statsService: statsService,
		validator:    validator.New(),
	}
}

// GetAlerts returns a page of alerts, optionally filtered by status,
// severity and type.
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	page, limit, sort := pageParams(c)
	filter := repository.AlertFilter{
		Status:   c.Query("status"),
		Severity: c.Query("severity"),
		Type:     c.Query("type"),
	}

	alerts, err := h.alertService.ListAlerts(c.Request.Context(), filter, page, limit, sort)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve alerts", err)
		return
	}

	utils.PaginatedResponse(c, alerts.Alerts, pageMeta(alerts))
}

// GetAlertsByUser returns a page of alerts raised against a user.
func (h *AlertHandler) GetAlertsByUser(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	page, limit, sort := pageParams(c)
	alerts, err := h.alertService.ListAlertsByUser(c.Request.Context(), userID, page, limit, sort)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve alerts", err)
		return
	}

	utils.PaginatedResponse(c, alerts.Alerts, pageMeta(alerts))
}

// GetAlertsByVehicle returns a page of alerts raised against a vehicle.
func (h *AlertHandler) GetAlertsByVehicle(c *gin.Context) {
	vehicleID, err := pathID(c, "vehicleId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID", err)
		return
	}

	page, limit, sort := pageParams(c)
	alerts, err := h.alertService.ListAlertsByVehicle(c.Request.Context(), vehicleID, page, limit, sort)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve alerts", err)
		return
	}

	utils.PaginatedResponse(c, alerts.Alerts, pageMeta(alerts))
}

// GetAlert retrieves a single alert by ID.
func (h *AlertHandler) GetAlert(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid alert ID", err)
		return
	}

	alert, err := h.alertService.GetAlertByID(c.Request.Context(), id)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve alert", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert retrieved successfully", alert)
}

// CreateAlert records a new alert.
func (h *AlertHandler) CreateAlert(c *gin.Context) {
	var req services.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	alert, err := h.alertService.CreateAlert(c.Request.Context(), &req)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to create alert", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Alert created successfully", alert)
}

// UpdateAlert applies a partial update to an alert.
func (h *AlertHandler) UpdateAlert(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid alert ID", err)
		return
	}

	var req services.UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	alert, err := h.alertService.UpdateAlert(c.Request.Context(), id, &req)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to update alert", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert updated successfully", alert)
}

// DeleteAlert removes an alert.
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid alert ID", err)
		return
	}

	if err := h.alertService.DeleteAlert(c.Request.Context(), id); err != nil {
		utils.MappedErrorResponse(c, "Failed to delete alert", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert deleted successfully", nil)
}

// GetAlertStats returns aggregate alert statistics. With a userId or
// vehicleId query parameter the result is scoped to that owner and carries
// the total count only.
func (h *AlertHandler) GetAlertStats(c *gin.Context) {
	scope, err := statsScope(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid scope parameter", err)
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), scope)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to compute alert statistics", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert statistics retrieved successfully", stats)
}

func statsScope(c *gin.Context) (repository.AlertScope, error) {
	if raw := c.Query("userId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return repository.AlertScope{}, err
		}
		return repository.UserScope(id), nil
	}
	if raw := c.Query("vehicleId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return repository.AlertScope{}, err
		}
		return repository.VehicleScope(id), nil
	}
	return repository.GlobalScope(), nil
}

func pageParams(c *gin.Context) (page, limit int, sort string) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit, c.Query("sort")
}

func pageMeta(p *services.AlertPage) utils.Meta {
	return utils.Meta{Page: p.Page, Limit: p.Limit, Total: p.Total, Pages: p.Pages()}
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
