package handlers

import (
	"net/http"

	"fleetwatch-backend/internal/services"
	"fleetwatch-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
	validator      *validator.Validate
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		validator:      validator.New(),
	}
}

// GetVehicles retrieves all vehicles, optionally filtered by status
func (h *VehicleHandler) GetVehicles(c *gin.Context) {
	var (
		vehicles interface{}
		err      error
	)
	if status := c.Query("status"); status != "" {
		vehicles, err = h.vehicleService.GetVehiclesByStatus(c.Request.Context(), status)
	} else {
		vehicles, err = h.vehicleService.GetAllVehicles(c.Request.Context())
	}
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve vehicles", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

// GetVehicle retrieves a specific vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID", err)
		return
	}

	vehicle, err := h.vehicleService.GetVehicleByID(c.Request.Context(), id)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle retrieved successfully", vehicle)
}

// GetVehiclesByUser retrieves vehicles assigned to a user
func (h *VehicleHandler) GetVehiclesByUser(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}

	vehicles, err := h.vehicleService.GetVehiclesByUser(c.Request.Context(), userID)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve vehicles", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

// CreateVehicle registers a new vehicle
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req services.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), &req)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to create vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Vehicle created successfully", vehicle)
}

// UpdateVehicle applies a partial update to a vehicle
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID", err)
		return
	}

	var req services.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(c.Request.Context(), id, &req)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to update vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle updated successfully", vehicle)
}

// DeleteVehicle removes a vehicle
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID", err)
		return
	}

	if err := h.vehicleService.DeleteVehicle(c.Request.Context(), id); err != nil {
		utils.MappedErrorResponse(c, "Failed to delete vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle deleted successfully", nil)
}

// AssignVehicle links a vehicle to a user
func (h *VehicleHandler) AssignVehicle(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}
	vehicleID, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID", err)
		return
	}

	if err := h.vehicleService.AssignVehicleToUser(c.Request.Context(), userID, vehicleID); err != nil {
		utils.MappedErrorResponse(c, "Failed to assign vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle assigned successfully", nil)
}

// UnassignVehicle removes a vehicle-user link
func (h *VehicleHandler) UnassignVehicle(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid user ID", err)
		return
	}
	vehicleID, err := pathID(c, "id")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid vehicle ID", err)
		return
	}

	if err := h.vehicleService.RemoveVehicleFromUser(c.Request.Context(), userID, vehicleID); err != nil {
		utils.MappedErrorResponse(c, "Failed to unassign vehicle", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Vehicle unassigned successfully", nil)
}
