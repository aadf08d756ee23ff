package models

import "time"

type Vehicle struct {
	ID           int64     `db:"id" json:"id"`
	LicensePlate string    `db:"license_plate" json:"licensePlate" validate:"required"`
	Brand        string    `db:"brand" json:"brand" validate:"required"`
	Model        string    `db:"model" json:"model" validate:"required"`
	Color        string    `db:"color" json:"color,omitempty"`
	Year         *int      `db:"year" json:"year,omitempty"`
	Mileage      int64     `db:"mileage" json:"mileage"`
	FuelType     string    `db:"fuel_type" json:"fuelType"`
	SafetyScore  int       `db:"safety_score" json:"safetyScore"`
	Status       string    `db:"status" json:"status"`
	LastActivity time.Time `db:"last_activity" json:"lastActivity"`
}

const (
	VehicleStatusActive   = "ACTIVE"
	VehicleStatusInactive = "INACTIVE"
)
