package handlers

import (
	"net/http"

	"fleetwatch-backend/internal/api/middleware"
	"fleetwatch-backend/internal/models"
	"fleetwatch-backend/internal/services"
	"fleetwatch-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type SensorHandler struct {
	sensorService *services.SensorService
	validator     *validator.Validate
}

func NewSensorHandler(sensorService *services.SensorService) *SensorHandler {
	return &SensorHandler{
		sensorService: sensorService,
		validator:     validator.New(),
	}
}

// SaveGPS stores a GPS reading for the authenticated user.
func (h *SensorHandler) SaveGPS(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	var data models.GPSData
	if err := c.ShouldBindJSON(&data); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&data); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	saved, err := h.sensorService.SaveGPS(c.Request.Context(), &data, user.ID)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to save GPS data", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "GPS data saved successfully", saved)
}

// GetGPS returns GPS readings, optionally filtered by device.
func (h *SensorHandler) GetGPS(c *gin.Context) {
	var (
		data []models.GPSData
		err  error
	)
	if deviceID := c.Query("deviceId"); deviceID != "" {
		data, err = h.sensorService.GetGPSByDevice(c.Request.Context(), deviceID)
	} else {
		data, err = h.sensorService.GetAllGPS(c.Request.Context())
	}
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve GPS data", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "GPS data retrieved successfully", data)
}

// SaveAccelerometer stores an accelerometer reading for the authenticated user.
func (h *SensorHandler) SaveAccelerometer(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	var data models.AccelerometerData
	if err := c.ShouldBindJSON(&data); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&data); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	saved, err := h.sensorService.SaveAccelerometer(c.Request.Context(), &data, user.ID)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to save accelerometer data", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Accelerometer data saved successfully", saved)
}

// GetAccelerometer returns accelerometer readings, optionally filtered by device.
func (h *SensorHandler) GetAccelerometer(c *gin.Context) {
	var (
		data []models.AccelerometerData
		err  error
	)
	if deviceID := c.Query("deviceId"); deviceID != "" {
		data, err = h.sensorService.GetAccelerometerByDevice(c.Request.Context(), deviceID)
	} else {
		data, err = h.sensorService.GetAllAccelerometer(c.Request.Context())
	}
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve accelerometer data", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Accelerometer data retrieved successfully", data)
}

// SaveGyroscope stores a gyroscope reading for the authenticated user.
func (h *SensorHandler) SaveGyroscope(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	var data models.GyroscopeData
	if err := c.ShouldBindJSON(&data); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := h.validator.Struct(&data); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	saved, err := h.sensorService.SaveGyroscope(c.Request.Context(), &data, user.ID)
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to save gyroscope data", err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "Gyroscope data saved successfully", saved)
}

// GetGyroscope returns gyroscope readings, optionally filtered by device.
func (h *SensorHandler) GetGyroscope(c *gin.Context) {
	var (
		data []models.GyroscopeData
		err  error
	)
	if deviceID := c.Query("deviceId"); deviceID != "" {
		data, err = h.sensorService.GetGyroscopeByDevice(c.Request.Context(), deviceID)
	} else {
		data, err = h.sensorService.GetAllGyroscope(c.Request.Context())
	}
	if err != nil {
		utils.MappedErrorResponse(c, "Failed to retrieve gyroscope data", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Gyroscope data retrieved successfully", data)
}
