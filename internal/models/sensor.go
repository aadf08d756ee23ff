package models

import "time"

// Raw sensor readings ingested from devices. Each reading belongs to the
// submitting user and optionally to a vehicle.

type GPSData struct {
	ID        int64     `db:"id" json:"id"`
	DeviceID  string    `db:"device_id" json:"deviceId" validate:"required"`
	Latitude  float64   `db:"latitude" json:"latitude"`
	Longitude float64   `db:"longitude" json:"longitude"`
	Altitude  float64   `db:"altitude" json:"altitude"`
	Speed     float64   `db:"speed" json:"speed"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	UserID    *int64    `db:"user_id" json:"userId,omitempty"`
	VehicleID *int64    `db:"vehicle_id" json:"vehicleId,omitempty"`
}

type AccelerometerData struct {
	ID        int64     `db:"id" json:"id"`
	DeviceID  string    `db:"device_id" json:"deviceId" validate:"required"`
	X         float64   `db:"x" json:"x"`
	Y         float64   `db:"y" json:"y"`
	Z         float64   `db:"z" json:"z"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	UserID    *int64    `db:"user_id" json:"userId,omitempty"`
	VehicleID *int64    `db:"vehicle_id" json:"vehicleId,omitempty"`
}

type GyroscopeData struct {
	ID        int64     `db:"id" json:"id"`
	DeviceID  string    `db:"device_id" json:"deviceId" validate:"required"`
	X         float64   `db:"x" json:"x"`
	Y         float64   `db:"y" json:"y"`
	Z         float64   `db:"z" json:"z"`
	Timestamp time.Time `db:"timestamp" json:"timestamp"`
	UserID    *int64    `db:"user_id" json:"userId,omitempty"`
	VehicleID *int64    `db:"vehicle_id" json:"vehicleId,omitempty"`
}
