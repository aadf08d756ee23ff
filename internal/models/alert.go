package models

import "time"

// Alert is a safety or operational event, optionally tied to a user and a
// vehicle. Both references are plain foreign keys; deleting the referenced
// row never cascades into alerts.
type Alert struct {
	ID          int64     `db:"id" json:"id"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	Severity    string    `db:"severity" json:"severity"`
	Status      string    `db:"status" json:"status"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
	UserID      *int64    `db:"user_id" json:"userId,omitempty"`
	VehicleID   *int64    `db:"vehicle_id" json:"vehicleId,omitempty"`
	Location    *Location `db:"-" json:"location,omitempty"`
	Notes       *string   `db:"notes" json:"notes,omitempty"`
	// Data is always a valid JSON document. Free text supplied by callers is
	// wrapped as {"value": "..."} instead of being rejected.
	Data *string `db:"data" json:"data,omitempty"`
}

// Location is an embedded coordinate pair with no identity of its own.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Stored severity and status values are free text, but the statistics
// breakdowns only count these.
const (
	SeverityHigh   = "HIGH"
	SeverityMedium = "MEDIUM"
	SeverityLow    = "LOW"

	StatusNew          = "NEW"
	StatusAcknowledged = "ACKNOWLEDGED"
	StatusResolved     = "RESOLVED"
)
