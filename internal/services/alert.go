package services

import (
	"context"
	"encoding/json"
	"time"

	"fleetwatch-backend/internal/models"
	"fleetwatch-backend/internal/query"
	"fleetwatch-backend/internal/repository"
	"fleetwatch-backend/pkg/cache"
)

type AlertService struct {
	alerts   AlertStore
	users    UserStore
	vehicles VehicleStore
	reports  *cache.Cache
}

func NewAlertService(alerts AlertStore, users UserStore, vehicles VehicleStore) *AlertService {
	return &AlertService{
		alerts:   alerts,
		users:    users,
		vehicles: vehicles,
	}
}

// SetReportCache makes writes drop the cached statistics report so it never
// serves counts from before the write longer than its TTL would allow.
func (s *AlertService) SetReportCache(reports *cache.Cache) {
	s.reports = reports
}

func (s *AlertService) dropCachedReport(ctx context.Context) {
	if s.reports != nil {
		_ = s.reports.Invalidate(ctx, statsReportKey)
	}
}

type CreateAlertRequest struct {
	Type        string   `json:"type" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Severity    string   `json:"severity" validate:"required"`
	Status      string   `json:"status,omitempty"`
	UserID      *int64   `json:"userId,omitempty"`
	VehicleID   *int64   `json:"vehicleId,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	Data        *string  `json:"data,omitempty"`
}

// UpdateAlertRequest is a partial patch; only non-nil fields overwrite.
type UpdateAlertRequest struct {
	Type        *string  `json:"type,omitempty"`
	Description *string  `json:"description,omitempty"`
	Severity    *string  `json:"severity,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	Data        *string  `json:"data,omitempty"`
}

// AlertPage is one page of alerts plus its pagination metadata.
type AlertPage struct {
	Alerts []*models.Alert
	Page   int
	Limit  int
	Total  int64
}

// Pages is the total page count for the query that produced this page.
func (p AlertPage) Pages() int {
	if p.Limit < 1 {
		return 0
	}
	return int((p.Total + int64(p.Limit) - 1) / int64(p.Limit))
}

// CreateAlert stores one alert. Referenced user and vehicle ids must resolve
// or creation fails; the timestamp is always assigned here, never taken from
// the caller.
func (s *AlertService) CreateAlert(ctx context.Context, req *CreateAlertRequest) (*models.Alert, error) {
	if req.UserID != nil {
		if _, err := s.users.FindByID(ctx, *req.UserID); err != nil {
			return nil, err
		}
	}
	if req.VehicleID != nil {
		if _, err := s.vehicles.FindByID(ctx, *req.VehicleID); err != nil {
			return nil, err
		}
	}

	status := req.Status
	if status == "" {
		status = models.StatusNew
	}

	alert := &models.Alert{
		Type:        req.Type,
		Description: req.Description,
		Severity:    req.Severity,
		Status:      status,
		Timestamp:   time.Now().UTC(),
		UserID:      req.UserID,
		VehicleID:   req.VehicleID,
		Notes:       req.Notes,
	}
	if req.Latitude != nil && req.Longitude != nil {
		alert.Location = &models.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	if req.Data != nil {
		normalized := normalizeJSON(*req.Data)
		alert.Data = &normalized
	}

	created, err := s.alerts.Create(ctx, alert)
	if err != nil {
		return nil, err
	}
	s.dropCachedReport(ctx)
	return created, nil
}

func (s *AlertService) GetAlertByID(ctx context.Context, id int64) (*models.Alert, error) {
	return s.alerts.FindByID(ctx, id)
}

// ListAlerts returns one page of alerts in the global scope.
func (s *AlertService) ListAlerts(ctx context.Context, filter repository.AlertFilter, page, limit int, sort string) (*AlertPage, error) {
	return s.listPage(ctx, repository.GlobalScope(), filter, page, limit, sort)
}

// ListAlertsByUser returns one page of the user's alerts; the user must
// exist.
func (s *AlertService) ListAlertsByUser(ctx context.Context, userID int64, page, limit int, sort string) (*AlertPage, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.listPage(ctx, repository.UserScope(userID), repository.AlertFilter{}, page, limit, sort)
}

// ListAlertsByVehicle returns one page of the vehicle's alerts; the vehicle
// must exist.
func (s *AlertService) ListAlertsByVehicle(ctx context.Context, vehicleID int64, page, limit int, sort string) (*AlertPage, error) {
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.listPage(ctx, repository.VehicleScope(vehicleID), repository.AlertFilter{}, page, limit, sort)
}

func (s *AlertService) listPage(ctx context.Context, scope repository.AlertScope, filter repository.AlertFilter, page, limit int, sort string) (*AlertPage, error) {
	q, err := query.Resolve(page, limit, sort)
	if err != nil {
		return nil, err
	}

	total, err := s.alerts.Count(ctx, scope, filter)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alerts.FindPage(ctx, scope, filter, q)
	if err != nil {
		return nil, err
	}

	return &AlertPage{Alerts: alerts, Page: page, Limit: limit, Total: total}, nil
}

func (s *AlertService) UpdateAlert(ctx context.Context, id int64, req *UpdateAlertRequest) (*models.Alert, error) {
	alert, err := s.alerts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		alert.Type = *req.Type
	}
	if req.Description != nil {
		alert.Description = *req.Description
	}
	if req.Severity != nil {
		alert.Severity = *req.Severity
	}
	if req.Status != nil {
		alert.Status = *req.Status
	}
	if req.Notes != nil {
		alert.Notes = req.Notes
	}
	if req.Data != nil {
		normalized := normalizeJSON(*req.Data)
		alert.Data = &normalized
	}
	if req.Latitude != nil && req.Longitude != nil {
		alert.Location = &models.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	updated, err := s.alerts.Update(ctx, alert)
	if err != nil {
		return nil, err
	}
	s.dropCachedReport(ctx)
	return updated, nil
}

func (s *AlertService) DeleteAlert(ctx context.Context, id int64) error {
	if _, err := s.alerts.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.alerts.Delete(ctx, id); err != nil {
		return err
	}
	s.dropCachedReport(ctx)
	return nil
}

// normalizeJSON keeps valid JSON untouched and wraps anything else as
// {"value": "<text>"} so the stored column always holds a JSON document.
func normalizeJSON(raw string) string {
	if json.Valid([]byte(raw)) {
		return raw
	}
	wrapped, err := json.Marshal(map[string]string{"value": raw})
	if err != nil {
		return `{"value": ""}`
	}
	return string(wrapped)
}
