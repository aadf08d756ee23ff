package models

import "time"

// AlertStats is a point-in-time snapshot assembled from independent read-only
// queries. It is never persisted; concurrent writes may leave individual
// buckets reflecting slightly different moments, which is acceptable for
// dashboard use.
//
// The breakdown maps, rankings and histograms are only populated for the
// unfiltered (global) scope. A user or vehicle filter yields TotalAlerts
// alone; the remaining fields stay absent.
type AlertStats struct {
	TotalAlerts   int64            `json:"totalAlerts"`
	SeverityStats map[string]int64 `json:"severityStats,omitempty"`
	StatusStats   map[string]int64 `json:"statusStats,omitempty"`
	TypeStats     []TypeStat       `json:"typeStats,omitempty"`
	TopCars       []CarStat        `json:"topCars,omitempty"`
	TimeStats     *TimeStats       `json:"timeStats,omitempty"`
}

type TypeStat struct {
	Type  string `db:"type" json:"type"`
	Count int64  `db:"count" json:"count"`
}

type CarStat struct {
	CarID        int64   `json:"carId"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	LicensePlate string  `json:"licensePlate"`
	Count        int64   `json:"count"`
	Percentage   float64 `json:"percentage"`
}

type TimeStats struct {
	ByHour []HourStat `json:"byHour"`
	ByDay  []DayStat  `json:"byDay"`
}

// HourStat is a sparse histogram bucket; hours without alerts are omitted
// rather than zero-filled.
type HourStat struct {
	Hour  int   `db:"hour" json:"hour"`
	Count int64 `db:"count" json:"count"`
}

type DayStat struct {
	Day     int    `json:"day"`
	DayName string `json:"dayName"`
	Count   int64  `json:"count"`
}

// StatsSummary aggregates the sensor streams for the dashboard header.
type StatsSummary struct {
	ActiveDevices              int   `json:"activeDevices"`
	TotalGPSPoints             int64 `json:"totalGPSPoints"`
	TotalAccelerometerReadings int64 `json:"totalAccelerometerReadings"`
	TotalGyroscopeReadings     int64 `json:"totalGyroscopeReadings"`
}

type DeviceActivity struct {
	DeviceID     string    `json:"deviceId"`
	ActivityType string    `json:"activityType"`
	Timestamp    time.Time `json:"timestamp"`
	Description  string    `json:"description"`
}

type DashboardData struct {
	StatsSummary
	RecentGPSData           []GPSData           `json:"recentGPSData"`
	RecentAccelerometerData []AccelerometerData `json:"recentAccelerometerData"`
	RecentGyroscopeData     []GyroscopeData     `json:"recentGyroscopeData"`
	DeviceActivities        []DeviceActivity    `json:"deviceActivities"`
}
