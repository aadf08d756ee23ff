package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fleetwatch-backend/internal/models"
)

const (
	recentWindow      = 24 * time.Hour
	activityPerStream = 10
	activityLimit     = 20
)

// DashboardService summarizes the sensor streams for the overview screens.
type DashboardService struct {
	sensors SensorStore
}

func NewDashboardService(sensors SensorStore) *DashboardService {
	return &DashboardService{sensors: sensors}
}

func (s *DashboardService) GetStatsSummary(ctx context.Context) (*models.StatsSummary, error) {
	devices, err := s.sensors.DistinctDeviceIDs(ctx)
	if err != nil {
		return nil, err
	}

	gps, err := s.sensors.CountGPS(ctx)
	if err != nil {
		return nil, err
	}
	accel, err := s.sensors.CountAccelerometer(ctx)
	if err != nil {
		return nil, err
	}
	gyro, err := s.sensors.CountGyroscope(ctx)
	if err != nil {
		return nil, err
	}

	return &models.StatsSummary{
		ActiveDevices:              len(devices),
		TotalGPSPoints:             gps,
		TotalAccelerometerReadings: accel,
		TotalGyroscopeReadings:     gyro,
	}, nil
}

func (s *DashboardService) GetDeviceIDs(ctx context.Context) ([]string, error) {
	return s.sensors.DistinctDeviceIDs(ctx)
}

// GetDashboardData bundles the summary with the last day's readings and a
// merged activity feed.
func (s *DashboardService) GetDashboardData(ctx context.Context) (*models.DashboardData, error) {
	summary, err := s.GetStatsSummary(ctx)
	if err != nil {
		return nil, err
	}

	since := time.Now().UTC().Add(-recentWindow)

	gps, err := s.sensors.FindGPSSince(ctx, since)
	if err != nil {
		return nil, err
	}
	accel, err := s.sensors.FindAccelerometerSince(ctx, since)
	if err != nil {
		return nil, err
	}
	gyro, err := s.sensors.FindGyroscopeSince(ctx, since)
	if err != nil {
		return nil, err
	}

	return &models.DashboardData{
		StatsSummary:            *summary,
		RecentGPSData:           gps,
		RecentAccelerometerData: accel,
		RecentGyroscopeData:     gyro,
		DeviceActivities:        buildActivities(gps, accel, gyro),
	}, nil
}

func buildActivities(gps []models.GPSData, accel []models.AccelerometerData, gyro []models.GyroscopeData) []models.DeviceActivity {
	activities := make([]models.DeviceActivity, 0, 3*activityPerStream)

	for i, d := range gps {
		if i == activityPerStream {
			break
		}
		activities = append(activities, models.DeviceActivity{
			DeviceID:     d.DeviceID,
			ActivityType: "GPS",
			Timestamp:    d.Timestamp,
			Description:  fmt.Sprintf("Location recorded at %.5f, %.5f", d.Latitude, d.Longitude),
		})
	}
	for i, d := range accel {
		if i == activityPerStream {
			break
		}
		activities = append(activities, models.DeviceActivity{
			DeviceID:     d.DeviceID,
			ActivityType: "ACCELEROMETER",
			Timestamp:    d.Timestamp,
			Description:  fmt.Sprintf("Acceleration sample (%.3f, %.3f, %.3f)", d.X, d.Y, d.Z),
		})
	}
	for i, d := range gyro {
		if i == activityPerStream {
			break
		}
		activities = append(activities, models.DeviceActivity{
			DeviceID:     d.DeviceID,
			ActivityType: "GYROSCOPE",
			Timestamp:    d.Timestamp,
			Description:  fmt.Sprintf("Rotation sample (%.3f, %.3f, %.3f)", d.X, d.Y, d.Z),
		})
	}

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > activityLimit {
		activities = activities[:activityLimit]
	}
	return activities
}
