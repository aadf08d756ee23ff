package services

import (
	"context"
	"time"

	"fleetwatch-backend/internal/models"
	"fleetwatch-backend/internal/query"
	"fleetwatch-backend/internal/repository"
)

// Store interfaces consumed by the services. The sqlx repositories satisfy
// them; tests substitute fakes.

type AlertStore interface {
	Create(ctx context.Context, alert *models.Alert) (*models.Alert, error)
	FindByID(ctx context.Context, id int64) (*models.Alert, error)
	FindPage(ctx context.Context, scope repository.AlertScope, filter repository.AlertFilter, q query.ListQuery) ([]*models.Alert, error)
	Count(ctx context.Context, scope repository.AlertScope, filter repository.AlertFilter) (int64, error)
	CountBySeverity(ctx context.Context, severity string) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountGroupByType(ctx context.Context) ([]models.TypeStat, error)
	CountGroupByVehicle(ctx context.Context, limit int) ([]repository.VehicleAlertCount, error)
	CountGroupByHour(ctx context.Context) ([]models.HourStat, error)
	CountGroupByDayOfWeek(ctx context.Context) ([]repository.DayBucket, error)
	Update(ctx context.Context, alert *models.Alert) (*models.Alert, error)
	Delete(ctx context.Context, id int64) error
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type VehicleStore interface {
	Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	FindByID(ctx context.Context, id int64) (*models.Vehicle, error)
	FindByLicensePlate(ctx context.Context, plate string) (*models.Vehicle, error)
	FindAll(ctx context.Context) ([]models.Vehicle, error)
	FindByStatus(ctx context.Context, status string) ([]models.Vehicle, error)
	FindByUserID(ctx context.Context, userID int64) ([]models.Vehicle, error)
	AssignToUser(ctx context.Context, userID, vehicleID int64) error
	RemoveFromUser(ctx context.Context, userID, vehicleID int64) error
	Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type SensorStore interface {
	InsertGPS(ctx context.Context, d *models.GPSData) (*models.GPSData, error)
	FindGPS(ctx context.Context) ([]models.GPSData, error)
	FindGPSByDevice(ctx context.Context, deviceID string) ([]models.GPSData, error)
	FindGPSSince(ctx context.Context, since time.Time) ([]models.GPSData, error)
	InsertAccelerometer(ctx context.Context, d *models.AccelerometerData) (*models.AccelerometerData, error)
	FindAccelerometer(ctx context.Context) ([]models.AccelerometerData, error)
	FindAccelerometerByDevice(ctx context.Context, deviceID string) ([]models.AccelerometerData, error)
	FindAccelerometerSince(ctx context.Context, since time.Time) ([]models.AccelerometerData, error)
	InsertGyroscope(ctx context.Context, d *models.GyroscopeData) (*models.GyroscopeData, error)
	FindGyroscope(ctx context.Context) ([]models.GyroscopeData, error)
	FindGyroscopeByDevice(ctx context.Context, deviceID string) ([]models.GyroscopeData, error)
	FindGyroscopeSince(ctx context.Context, since time.Time) ([]models.GyroscopeData, error)
	DistinctDeviceIDs(ctx context.Context) ([]string, error)
	CountGPS(ctx context.Context) (int64, error)
	CountAccelerometer(ctx context.Context) (int64, error)
	CountGyroscope(ctx context.Context) (int64, error)
}
