package services

import (
	"context"
	"time"

	"fleetwatch-backend/internal/models"
)

// SensorService ingests and serves raw telemetry readings. Readings are
// stamped on arrival and attributed to the authenticated user.
type SensorService struct {
	sensors  SensorStore
	vehicles VehicleStore
}

func NewSensorService(sensors SensorStore, vehicles VehicleStore) *SensorService {
	return &SensorService{sensors: sensors, vehicles: vehicles}
}

func (s *SensorService) SaveGPS(ctx context.Context, d *models.GPSData, userID int64) (*models.GPSData, error) {
	if d.VehicleID != nil {
		if _, err := s.vehicles.FindByID(ctx, *d.VehicleID); err != nil {
			return nil, err
		}
	}
	d.UserID = &userID
	d.Timestamp = time.Now().UTC()
	return s.sensors.InsertGPS(ctx, d)
}

func (s *SensorService) GetAllGPS(ctx context.Context) ([]models.GPSData, error) {
	return s.sensors.FindGPS(ctx)
}

func (s *SensorService) GetGPSByDevice(ctx context.Context, deviceID string) ([]models.GPSData, error) {
	return s.sensors.FindGPSByDevice(ctx, deviceID)
}

func (s *SensorService) SaveAccelerometer(ctx context.Context, d *models.AccelerometerData, userID int64) (*models.AccelerometerData, error) {
	if d.VehicleID != nil {
		if _, err := s.vehicles.FindByID(ctx, *d.VehicleID); err != nil {
			return nil, err
		}
	}
	d.UserID = &userID
	d.Timestamp = time.Now().UTC()
	return s.sensors.InsertAccelerometer(ctx, d)
}

func (s *SensorService) GetAllAccelerometer(ctx context.Context) ([]models.AccelerometerData, error) {
	return s.sensors.FindAccelerometer(ctx)
}

func (s *SensorService) GetAccelerometerByDevice(ctx context.Context, deviceID string) ([]models.AccelerometerData, error) {
	return s.sensors.FindAccelerometerByDevice(ctx, deviceID)
}

func (s *SensorService) SaveGyroscope(ctx context.Context, d *models.GyroscopeData, userID int64) (*models.GyroscopeData, error) {
	if d.VehicleID != nil {
		if _, err := s.vehicles.FindByID(ctx, *d.VehicleID); err != nil {
			return nil, err
		}
	}
	d.UserID = &userID
	d.Timestamp = time.Now().UTC()
	return s.sensors.InsertGyroscope(ctx, d)
}

func (s *SensorService) GetAllGyroscope(ctx context.Context) ([]models.GyroscopeData, error) {
	return s.sensors.FindGyroscope(ctx)
}

func (s *SensorService) GetGyroscopeByDevice(ctx context.Context, deviceID string) ([]models.GyroscopeData, error) {
	return s.sensors.FindGyroscopeByDevice(ctx, deviceID)
}
