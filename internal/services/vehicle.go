package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetwatch-backend/internal/apperr"
	"fleetwatch-backend/internal/models"
)

type VehicleService struct {
	vehicles VehicleStore
	users    UserStore
}

func NewVehicleService(vehicles VehicleStore, users UserStore) *VehicleService {
	return &VehicleService{vehicles: vehicles, users: users}
}

type CreateVehicleRequest struct {
	LicensePlate string `json:"licensePlate" validate:"required"`
	Brand        string `json:"brand" validate:"required"`
	Model        string `json:"model" validate:"required"`
	Color        string `json:"color,omitempty"`
	Year         *int   `json:"year,omitempty"`
	Mileage      int64  `json:"mileage,omitempty"`
	FuelType     string `json:"fuelType,omitempty"`
}

type UpdateVehicleRequest struct {
	LicensePlate *string `json:"licensePlate,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	Color        *string `json:"color,omitempty"`
	Year         *int    `json:"year,omitempty"`
	Mileage      *int64  `json:"mileage,omitempty"`
	FuelType     *string `json:"fuelType,omitempty"`
	SafetyScore  *int    `json:"safetyScore,omitempty" validate:"omitempty,min=0,max=100"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (s *VehicleService) GetAllVehicles(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicles.FindAll(ctx)
}

func (s *VehicleService) GetVehicleByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	return s.vehicles.FindByID(ctx, id)
}

func (s *VehicleService) GetVehiclesByStatus(ctx context.Context, status string) ([]models.Vehicle, error) {
	return s.vehicles.FindByStatus(ctx, status)
}

func (s *VehicleService) GetVehiclesByUser(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.vehicles.FindByUserID(ctx, userID)
}

func (s *VehicleService) CreateVehicle(ctx context.Context, req *CreateVehicleRequest) (*models.Vehicle, error) {
	_, err := s.vehicles.FindByLicensePlate(ctx, req.LicensePlate)
	if err == nil {
		return nil, fmt.Errorf("%w: license plate already registered", apperr.ErrInvalidArgument)
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	fuelType := req.FuelType
	if fuelType == "" {
		fuelType = "Gasoline"
	}

	vehicle := &models.Vehicle{
		LicensePlate: req.LicensePlate,
		Brand:        req.Brand,
		Model:        req.Model,
		Color:        req.Color,
		Year:         req.Year,
		Mileage:      req.Mileage,
		FuelType:     fuelType,
		SafetyScore:  80,
		Status:       models.VehicleStatusActive,
		LastActivity: time.Now().UTC(),
	}
	return s.vehicles.Create(ctx, vehicle)
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, id int64, req *UpdateVehicleRequest) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LicensePlate != nil {
		vehicle.LicensePlate = *req.LicensePlate
	}
	if req.Brand != nil {
		vehicle.Brand = *req.Brand
	}
	if req.Model != nil {
		vehicle.Model = *req.Model
	}
	if req.Color != nil {
		vehicle.Color = *req.Color
	}
	if req.Year != nil {
		vehicle.Year = req.Year
	}
	if req.Mileage != nil {
		vehicle.Mileage = *req.Mileage
	}
	if req.FuelType != nil {
		vehicle.FuelType = *req.FuelType
	}
	if req.SafetyScore != nil {
		vehicle.SafetyScore = *req.SafetyScore
	}
	if req.Status != nil {
		vehicle.Status = *req.Status
	}
	vehicle.LastActivity = time.Now().UTC()

	return s.vehicles.Update(ctx, vehicle)
}

func (s *VehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	if _, err := s.vehicles.FindByID(ctx, id); err != nil {
		return err
	}
	return s.vehicles.Delete(ctx, id)
}

func (s *VehicleService) AssignVehicleToUser(ctx context.Context, userID, vehicleID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return err
	}
	return s.vehicles.AssignToUser(ctx, userID, vehicleID)
}

func (s *VehicleService) RemoveVehicleFromUser(ctx context.Context, userID, vehicleID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return err
	}
	return s.vehicles.RemoveFromUser(ctx, userID, vehicleID)
}
