package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"fleetwatch-backend/internal/models"
)

// SensorRepository persists the three raw telemetry streams. The streams
// share a shape but live in separate tables so each can grow and be indexed
// independently.
type SensorRepository struct {
	db *sqlx.DB
}

func NewSensorRepository(db *sqlx.DB) *SensorRepository {
	return &SensorRepository{db: db}
}

const gpsColumns = `id, device_id, latitude, longitude, altitude, speed, timestamp, user_id, vehicle_id`

func (r *SensorRepository) InsertGPS(ctx context.Context, d *models.GPSData) (*models.GPSData, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO gps_data (device_id, latitude, longitude, altitude, speed, timestamp, user_id, vehicle_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		d.DeviceID, d.Latitude, d.Longitude, d.Altitude, d.Speed, d.Timestamp, d.UserID, d.VehicleID,
	).Scan(&d.ID)
	if err != nil {
		return nil, fmt.Errorf("insert gps reading: %w", err)
	}
	return d, nil
}

func (r *SensorRepository) FindGPS(ctx context.Context) ([]models.GPSData, error) {
	var out []models.GPSData
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+gpsColumns+` FROM gps_data ORDER BY timestamp DESC`)
	return out, err
}

func (r *SensorRepository) FindGPSByDevice(ctx context.Context, deviceID string) ([]models.GPSData, error) {
	var out []models.GPSData
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+gpsColumns+` FROM gps_data WHERE device_id = $1 ORDER BY timestamp DESC`, deviceID)
	return out, err
}

func (r *SensorRepository) FindGPSSince(ctx context.Context, since time.Time) ([]models.GPSData, error) {
	var out []models.GPSData
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+gpsColumns+` FROM gps_data WHERE timestamp > $1 ORDER BY timestamp DESC`, since)
	return out, err
}

const axisColumns = `id, device_id, x, y, z, timestamp, user_id, vehicle_id`

func (r *SensorRepository) InsertAccelerometer(ctx context.Context, d *models.AccelerometerData) (*models.AccelerometerData, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO accelerometer_data (device_id, x, y, z, timestamp, user_id, vehicle_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		d.DeviceID, d.X, d.Y, d.Z, d.Timestamp, d.UserID, d.VehicleID,
	).Scan(&d.ID)
	if err != nil {
		return nil, fmt.Errorf("insert accelerometer reading: %w", err)
	}
	return d, nil
}

func (r *SensorRepository) FindAccelerometer(ctx context.Context) ([]models.AccelerometerData, error) {
	var out []models.AccelerometerData
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+axisColumns+` FROM accelerometer_data ORDER BY timestamp DESC`)
	return out, err
}

func (r *SensorRepository) FindAccelerometerByDevice(ctx context.Context, deviceID string) ([]models.AccelerometerData, error) {
	var out []models.AccelerometerData
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+axisColumns+` FROM accelerometer_data WHERE device_id = $1 ORDER BY timestamp DESC`, deviceID)
	return out, err
}

func (r *SensorRepository) FindAccelerometerSince(ctx context.Context, since time.Time) ([]models.AccelerometerData, error) {
	var out []models.AccelerometerData
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+axisColumns+` FROM accelerometer_data WHERE timestamp > $1 ORDER BY timestamp DESC`, since)
	return out, err
}

func (r *SensorRepository) InsertGyroscope(ctx context.Context, d *models.GyroscopeData) (*models.GyroscopeData, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO gyroscope_data (device_id, x, y, z, timestamp, user_id, vehicle_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		d.DeviceID, d.X, d.Y, d.Z, d.Timestamp, d.UserID, d.VehicleID,
	).Scan(&d.ID)
	if err != nil {
		return nil, fmt.Errorf("insert gyroscope reading: %w", err)
	}
	return d, nil
}

func (r *SensorRepository) FindGyroscope(ctx context.Context) ([]models.GyroscopeData, error) {
	var out []models.GyroscopeData
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+axisColumns+` FROM gyroscope_data ORDER BY timestamp DESC`)
	return out, err
}

func (r *SensorRepository) FindGyroscopeByDevice(ctx context.Context, deviceID string) ([]models.GyroscopeData, error) {
	var out []models.GyroscopeData
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+axisColumns+` FROM gyroscope_data WHERE device_id = $1 ORDER BY timestamp DESC`, deviceID)
	return out, err
}

func (r *SensorRepository) FindGyroscopeSince(ctx context.Context, since time.Time) ([]models.GyroscopeData, error) {
	var out []models.GyroscopeData
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+axisColumns+` FROM gyroscope_data WHERE timestamp > $1 ORDER BY timestamp DESC`, since)
	return out, err
}

// DistinctDeviceIDs returns every device id seen across the three streams.
func (r *SensorRepository) DistinctDeviceIDs(ctx context.Context) ([]string, error) {
	var out []string
	err := r.db.SelectContext(ctx, &out, `
		SELECT device_id FROM gps_data
		UNION
		SELECT device_id FROM accelerometer_data
		UNION
		SELECT device_id FROM gyroscope_data
		ORDER BY device_id ASC`)
	return out, err
}

func (r *SensorRepository) CountGPS(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM gps_data`)
	return count, err
}

func (r *SensorRepository) CountAccelerometer(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM accelerometer_data`)
	return count, err
}

func (r *SensorRepository) CountGyroscope(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM gyroscope_data`)
	return count, err
}

// PruneBefore deletes readings older than cutoff from every stream and
// reports the total number of rows removed.
func (r *SensorRepository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64
	for _, table := range []string{"gps_data", "accelerometer_data", "gyroscope_data"} {
		res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < $1`, cutoff)
		if err != nil {
			return total, fmt.Errorf("prune %s: %w", table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			total += n
		}
	}
	return total, nil
}
