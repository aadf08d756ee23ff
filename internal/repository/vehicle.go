package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"fleetwatch-backend/internal/apperr"
	"fleetwatch-backend/internal/models"
)

const vehicleColumns = `id, license_plate, brand, model, color, year, mileage, fuel_type, safety_score, status, last_activity`

type VehicleRepository struct {
	db *sqlx.DB
}

func NewVehicleRepository(db *sqlx.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO vehicles (license_plate, brand, model, color, year, mileage, fuel_type, safety_score, status, last_activity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		vehicle.LicensePlate, vehicle.Brand, vehicle.Model, vehicle.Color, vehicle.Year,
		vehicle.Mileage, vehicle.FuelType, vehicle.SafetyScore, vehicle.Status, vehicle.LastActivity,
	).Scan(&vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}
	return vehicle, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.GetContext(ctx, &vehicle, `SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %d: %w", id, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindByLicensePlate(ctx context.Context, plate string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.GetContext(ctx, &vehicle, `SELECT `+vehicleColumns+` FROM vehicles WHERE license_plate = $1`, plate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vehicle %q: %w", plate, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindAll(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.SelectContext(ctx, &vehicles, `SELECT `+vehicleColumns+` FROM vehicles ORDER BY id ASC`)
	return vehicles, err
}

func (r *VehicleRepository) FindByStatus(ctx context.Context, status string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.SelectContext(ctx, &vehicles,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE status = $1 ORDER BY id ASC`, status)
	return vehicles, err
}

// FindByUserID lists the vehicles assigned to a user via the join table.
func (r *VehicleRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.SelectContext(ctx, &vehicles, `
		SELECT v.id, v.license_plate, v.brand, v.model, v.color, v.year, v.mileage,
		       v.fuel_type, v.safety_score, v.status, v.last_activity
		FROM vehicles v
		JOIN user_vehicles uv ON uv.vehicle_id = v.id
		WHERE uv.user_id = $1
		ORDER BY v.id ASC`, userID)
	return vehicles, err
}

func (r *VehicleRepository) AssignToUser(ctx context.Context, userID, vehicleID int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_vehicles (user_id, vehicle_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, userID, vehicleID)
	return err
}

func (r *VehicleRepository) RemoveFromUser(ctx context.Context, userID, vehicleID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM user_vehicles WHERE user_id = $1 AND vehicle_id = $2`, userID, vehicleID)
	return err
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) (*models.Vehicle, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vehicles
		SET license_plate = $1, brand = $2, model = $3, color = $4, year = $5,
		    mileage = $6, fuel_type = $7, safety_score = $8, status = $9, last_activity = $10
		WHERE id = $11`,
		vehicle.LicensePlate, vehicle.Brand, vehicle.Model, vehicle.Color, vehicle.Year,
		vehicle.Mileage, vehicle.FuelType, vehicle.SafetyScore, vehicle.Status, vehicle.LastActivity,
		vehicle.ID)
	if err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, fmt.Errorf("vehicle %d: %w", vehicle.ID, apperr.ErrNotFound)
	}
	return vehicle, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("vehicle %d: %w", id, apperr.ErrNotFound)
	}
	return nil
}
