package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"fleetwatch-backend/internal/apperr"
	"fleetwatch-backend/internal/models"
	"fleetwatch-backend/internal/query"
)

// AlertScope narrows alert queries to one owner dimension. The zero value is
// the global (unfiltered) scope; the constructors guarantee a user filter and
// a vehicle filter can never be set at the same time.
type AlertScope struct {
	userID    *int64
	vehicleID *int64
}

func GlobalScope() AlertScope { return AlertScope{} }

func UserScope(id int64) AlertScope { return AlertScope{userID: &id} }

func VehicleScope(id int64) AlertScope { return AlertScope{vehicleID: &id} }

// ByUser reports whether the scope filters by user, and for which id.
func (s AlertScope) ByUser() (int64, bool) {
	if s.userID == nil {
		return 0, false
	}
	return *s.userID, true
}

// ByVehicle reports whether the scope filters by vehicle, and for which id.
func (s AlertScope) ByVehicle() (int64, bool) {
	if s.vehicleID == nil {
		return 0, false
	}
	return *s.vehicleID, true
}

func (s AlertScope) IsGlobal() bool { return s.userID == nil && s.vehicleID == nil }

// AlertFilter narrows list queries by exact field values. Empty fields are
// ignored.
type AlertFilter struct {
	Status   string
	Severity string
	Type     string
}

// alertRow carries the nullable coordinate columns next to the model fields.
type alertRow struct {
	models.Alert
	Latitude  *float64 `db:"latitude"`
	Longitude *float64 `db:"longitude"`
}

func (r alertRow) toModel() *models.Alert {
	alert := r.Alert
	if r.Latitude != nil && r.Longitude != nil {
		alert.Location = &models.Location{Latitude: *r.Latitude, Longitude: *r.Longitude}
	}
	return &alert
}

const alertColumns = `id, type, description, severity, status, timestamp, user_id, vehicle_id, latitude, longitude, notes, data`

type AlertRepository struct {
	db *sqlx.DB
}

func NewAlertRepository(db *sqlx.DB) *AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	var lat, lon *float64
	if alert.Location != nil {
		lat, lon = &alert.Location.Latitude, &alert.Location.Longitude
	}

	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO alerts (type, description, severity, status, timestamp, user_id, vehicle_id, latitude, longitude, notes, data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		alert.Type, alert.Description, alert.Severity, alert.Status, alert.Timestamp,
		alert.UserID, alert.VehicleID, lat, lon, alert.Notes, alert.Data,
	).Scan(&alert.ID)
	if err != nil {
		return nil, fmt.Errorf("insert alert: %w", err)
	}
	return alert, nil
}

func (r *AlertRepository) FindByID(ctx context.Context, id int64) (*models.Alert, error) {
	var row alertRow
	err := r.db.GetContext(ctx, &row,
		`SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("alert %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// FindPage returns one ordered page of alerts under the given scope and
// filter.
func (r *AlertRepository) FindPage(ctx context.Context, scope AlertScope, filter AlertFilter, q query.ListQuery) ([]*models.Alert, error) {
	where, args := alertWhere(scope, filter)
	args = append(args, q.Limit, q.Offset)

	// OrderClause only ever emits allow-listed columns, see query.Resolve.
	stmt := fmt.Sprintf(`SELECT %s FROM alerts%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		alertColumns, where, q.OrderClause(), len(args)-1, len(args))

	var rows []alertRow
	if err := r.db.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, err
	}

	alerts := make([]*models.Alert, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, row.toModel())
	}
	return alerts, nil
}

func (r *AlertRepository) Count(ctx context.Context, scope AlertScope, filter AlertFilter) (int64, error) {
	where, args := alertWhere(scope, filter)
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM alerts`+where, args...)
	return count, err
}

func (r *AlertRepository) CountBySeverity(ctx context.Context, severity string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM alerts WHERE severity = $1`, severity)
	return count, err
}

func (r *AlertRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM alerts WHERE status = $1`, status)
	return count, err
}

// CountGroupByType returns per-type alert counts, most frequent first.
func (r *AlertRepository) CountGroupByType(ctx context.Context) ([]models.TypeStat, error) {
	var out []models.TypeStat
	err := r.db.SelectContext(ctx, &out, `
		SELECT type, COUNT(*) AS count
		FROM alerts
		GROUP BY type
		ORDER BY count DESC, type ASC`)
	return out, err
}

// VehicleAlertCount is one ranking bucket from CountGroupByVehicle.
type VehicleAlertCount struct {
	VehicleID int64 `db:"vehicle_id"`
	Count     int64 `db:"count"`
}

// CountGroupByVehicle ranks vehicles by alert volume, highest first. Ties
// break on ascending vehicle id so the ranking is deterministic.
func (r *AlertRepository) CountGroupByVehicle(ctx context.Context, limit int) ([]VehicleAlertCount, error) {
	var out []VehicleAlertCount
	err := r.db.SelectContext(ctx, &out, `
		SELECT vehicle_id, COUNT(*) AS count
		FROM alerts
		WHERE vehicle_id IS NOT NULL
		GROUP BY vehicle_id
		ORDER BY count DESC, vehicle_id ASC
		LIMIT $1`, limit)
	return out, err
}

// CountGroupByHour returns one bucket per hour of day that has at least one
// alert; empty hours are absent, not zero.
func (r *AlertRepository) CountGroupByHour(ctx context.Context) ([]models.HourStat, error) {
	var out []models.HourStat
	err := r.db.SelectContext(ctx, &out, `
		SELECT EXTRACT(HOUR FROM timestamp)::int AS hour, COUNT(*) AS count
		FROM alerts
		GROUP BY hour
		ORDER BY hour ASC`)
	return out, err
}

// DayBucket is one day-of-week histogram bucket. Day uses the store's native
// 1..7 numbering with 1 = Sunday.
type DayBucket struct {
	Day   int   `db:"day"`
	Count int64 `db:"count"`
}

// CountGroupByDayOfWeek returns one bucket per weekday that has alerts.
// Postgres EXTRACT(DOW) counts 0..6 from Sunday; the +1 keeps the wire
// numbering at 1..7 with Sunday first.
func (r *AlertRepository) CountGroupByDayOfWeek(ctx context.Context) ([]DayBucket, error) {
	var out []DayBucket
	err := r.db.SelectContext(ctx, &out, `
		SELECT (EXTRACT(DOW FROM timestamp)::int + 1) AS day, COUNT(*) AS count
		FROM alerts
		GROUP BY day
		ORDER BY day ASC`)
	return out, err
}

func (r *AlertRepository) Update(ctx context.Context, alert *models.Alert) (*models.Alert, error) {
	var lat, lon *float64
	if alert.Location != nil {
		lat, lon = &alert.Location.Latitude, &alert.Location.Longitude
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE alerts
		SET type = $1, description = $2, severity = $3, status = $4,
		    latitude = $5, longitude = $6, notes = $7, data = $8
		WHERE id = $9`,
		alert.Type, alert.Description, alert.Severity, alert.Status,
		lat, lon, alert.Notes, alert.Data, alert.ID)
	if err != nil {
		return nil, fmt.Errorf("update alert: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("alert %d: %w", alert.ID, apperr.ErrNotFound)
	}
	return alert, nil
}

func (r *AlertRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM alerts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("alert %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func alertWhere(scope AlertScope, filter AlertFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if id, ok := scope.ByUser(); ok {
		add("user_id", id)
	}
	if id, ok := scope.ByVehicle(); ok {
		add("vehicle_id", id)
	}
	if filter.Status != "" {
		add("status", filter.Status)
	}
	if filter.Severity != "" {
		add("severity", filter.Severity)
	}
	if filter.Type != "" {
		add("type", filter.Type)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
