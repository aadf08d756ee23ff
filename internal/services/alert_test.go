package services

import (
	"context"
	"testing"
	"time"

	"fleetwatch-backend/internal/apperr"
	"fleetwatch-backend/internal/models"
	"fleetwatch-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestNormalizeJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object passes through", `{"speed": 120}`, `{"speed": 120}`},
		{"array passes through", `[1, 2, 3]`, `[1, 2, 3]`},
		{"quoted string passes through", `"ok"`, `"ok"`},
		{"bare number passes through", `42`, `42`},
		{"plain text is wrapped", `engine overheating`, `{"value":"engine overheating"}`},
		{"broken json is wrapped", `{"speed": `, `{"value":"{\"speed\": "}`},
		{"empty string is wrapped", ``, `{"value":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeJSON(tt.in))
		})
	}
}

func TestCreateAlertDefaults(t *testing.T) {
	alerts := newFakeAlertStore()
	svc := NewAlertService(alerts, newFakeUserStore(), newFakeVehicleStore())

	before := time.Now().UTC()
	alert, err := svc.CreateAlert(context.Background(), &CreateAlertRequest{
		Type:        "SPEEDING",
		Description: "exceeded limit by 30km/h",
		Severity:    models.SeverityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusNew, alert.Status)
	assert.False(t, alert.Timestamp.Before(before))
	assert.Nil(t, alert.Location)
	assert.Nil(t, alert.Data)
	assert.NotZero(t, alert.ID)
}

func TestCreateAlertWrapsNonJSONData(t *testing.T) {
	svc := NewAlertService(newFakeAlertStore(), newFakeUserStore(), newFakeVehicleStore())

	alert, err := svc.CreateAlert(context.Background(), &CreateAlertRequest{
		Type:        "ENGINE",
		Description: "check engine light",
		Severity:    models.SeverityMedium,
		Data:        strPtr("raw sensor dump"),
	})
	require.NoError(t, err)

	require.NotNil(t, alert.Data)
	assert.JSONEq(t, `{"value":"raw sensor dump"}`, *alert.Data)
}

func TestCreateAlertLocationNeedsBothCoordinates(t *testing.T) {
	svc := NewAlertService(newFakeAlertStore(), newFakeUserStore(), newFakeVehicleStore())

	alert, err := svc.CreateAlert(context.Background(), &CreateAlertRequest{
		Type:        "SPEEDING",
		Description: "lat only",
		Severity:    models.SeverityLow,
		Latitude:    floatPtr(-1.2921),
	})
	require.NoError(t, err)
	assert.Nil(t, alert.Location)

	alert, err = svc.CreateAlert(context.Background(), &CreateAlertRequest{
		Type:        "SPEEDING",
		Description: "both",
		Severity:    models.SeverityLow,
		Latitude:    floatPtr(-1.2921),
		Longitude:   floatPtr(36.8219),
	})
	require.NoError(t, err)
	require.NotNil(t, alert.Location)
	assert.Equal(t, -1.2921, alert.Location.Latitude)
	assert.Equal(t, 36.8219, alert.Location.Longitude)
}

func TestCreateAlertRejectsUnknownReferences(t *testing.T) {
	svc := NewAlertService(newFakeAlertStore(), newFakeUserStore(), newFakeVehicleStore())

	_, err := svc.CreateAlert(context.Background(), &CreateAlertRequest{
		Type:        "SPEEDING",
		Description: "bad user",
		Severity:    models.SeverityHigh,
		UserID:      int64Ptr(99),
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.CreateAlert(context.Background(), &CreateAlertRequest{
		Type:        "SPEEDING",
		Description: "bad vehicle",
		Severity:    models.SeverityHigh,
		VehicleID:   int64Ptr(99),
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateAlertPatchesOnlyProvidedFields(t *testing.T) {
	alerts := newFakeAlertStore()
	seedAlerts(alerts, &models.Alert{
		Type:        "SPEEDING",
		Description: "original",
		Severity:    models.SeverityHigh,
		Status:      models.StatusNew,
	})

	svc := NewAlertService(alerts, newFakeUserStore(), newFakeVehicleStore())
	updated, err := svc.UpdateAlert(context.Background(), 1, &UpdateAlertRequest{
		Status: strPtr(models.StatusAcknowledged),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusAcknowledged, updated.Status)
	assert.Equal(t, "SPEEDING", updated.Type)
	assert.Equal(t, "original", updated.Description)
	assert.Equal(t, models.SeverityHigh, updated.Severity)
}

func TestUpdateAlertMissing(t *testing.T) {
	svc := NewAlertService(newFakeAlertStore(), newFakeUserStore(), newFakeVehicleStore())

	_, err := svc.UpdateAlert(context.Background(), 404, &UpdateAlertRequest{Status: strPtr(models.StatusResolved)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteAlertMissing(t *testing.T) {
	svc := NewAlertService(newFakeAlertStore(), newFakeUserStore(), newFakeVehicleStore())

	err := svc.DeleteAlert(context.Background(), 404)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListAlertsInvalidSortField(t *testing.T) {
	svc := NewAlertService(newFakeAlertStore(), newFakeUserStore(), newFakeVehicleStore())

	_, err := svc.ListAlerts(context.Background(), repository.AlertFilter{}, 1, 10, "description")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestListAlertsByUnknownUser(t *testing.T) {
	svc := NewAlertService(newFakeAlertStore(), newFakeUserStore(), newFakeVehicleStore())

	_, err := svc.ListAlertsByUser(context.Background(), 42, 1, 10, "")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListAlertsPagination(t *testing.T) {
	alerts := newFakeAlertStore()
	for i := 0; i < 23; i++ {
		seedAlerts(alerts, &models.Alert{Type: "SPEEDING", Severity: models.SeverityLow, Status: models.StatusNew})
	}
	alerts.page = []*models.Alert{{ID: 21}, {ID: 22}, {ID: 23}}

	svc := NewAlertService(alerts, newFakeUserStore(), newFakeVehicleStore())
	page, err := svc.ListAlerts(context.Background(), repository.AlertFilter{}, 3, 10, "")
	require.NoError(t, err)

	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(23), page.Total)
	assert.Equal(t, 3, page.Pages())
	assert.Equal(t, 20, alerts.lastQuery.Offset)
	assert.Len(t, page.Alerts, 3)
}

func TestAlertPagePages(t *testing.T) {
	assert.Equal(t, 0, AlertPage{Limit: 10, Total: 0}.Pages())
	assert.Equal(t, 1, AlertPage{Limit: 10, Total: 10}.Pages())
	assert.Equal(t, 2, AlertPage{Limit: 10, Total: 11}.Pages())
	assert.Equal(t, 0, AlertPage{Limit: 0, Total: 5}.Pages())
}
