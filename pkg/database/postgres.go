package database

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Connect opens and verifies a Postgres connection pool.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// schema holds the idempotent table and index definitions. Statements run in
// order because of the foreign keys.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		username   TEXT NOT NULL UNIQUE,
		email      TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		telephone  TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT 'ACTIVE'
	)`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id            BIGSERIAL PRIMARY KEY,
		license_plate TEXT NOT NULL UNIQUE,
		brand         TEXT NOT NULL,
		model         TEXT NOT NULL,
		color         TEXT NOT NULL DEFAULT '',
		year          INT,
		mileage       BIGINT NOT NULL DEFAULT 0,
		fuel_type     TEXT NOT NULL DEFAULT 'Gasoline',
		safety_score  INT NOT NULL DEFAULT 80,
		status        TEXT NOT NULL DEFAULT 'ACTIVE',
		last_activity TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_vehicles (
		user_id    BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		vehicle_id BIGINT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, vehicle_id)
	)`,

	// user_id and vehicle_id are weak references: deleting the owner keeps
	// the alert and nulls the link.
	`CREATE TABLE IF NOT EXISTS alerts (
		id          BIGSERIAL PRIMARY KEY,
		type        TEXT NOT NULL,
		description TEXT NOT NULL,
		severity    TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'NEW',
		timestamp   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		user_id     BIGINT REFERENCES users(id) ON DELETE SET NULL,
		vehicle_id  BIGINT REFERENCES vehicles(id) ON DELETE SET NULL,
		latitude    DOUBLE PRECISION,
		longitude   DOUBLE PRECISION,
		notes       TEXT,
		data        JSONB
	)`,

	`CREATE TABLE IF NOT EXISTS gps_data (
		id         BIGSERIAL PRIMARY KEY,
		device_id  TEXT NOT NULL,
		latitude   DOUBLE PRECISION NOT NULL,
		longitude  DOUBLE PRECISION NOT NULL,
		altitude   DOUBLE PRECISION NOT NULL DEFAULT 0,
		speed      DOUBLE PRECISION NOT NULL DEFAULT 0,
		timestamp  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		user_id    BIGINT REFERENCES users(id) ON DELETE SET NULL,
		vehicle_id BIGINT REFERENCES vehicles(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS accelerometer_data (
		id         BIGSERIAL PRIMARY KEY,
		device_id  TEXT NOT NULL,
		x          DOUBLE PRECISION NOT NULL,
		y          DOUBLE PRECISION NOT NULL,
		z          DOUBLE PRECISION NOT NULL,
		timestamp  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		user_id    BIGINT REFERENCES users(id) ON DELETE SET NULL,
		vehicle_id BIGINT REFERENCES vehicles(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS gyroscope_data (
		id         BIGSERIAL PRIMARY KEY,
		device_id  TEXT NOT NULL,
		x          DOUBLE PRECISION NOT NULL,
		y          DOUBLE PRECISION NOT NULL,
		z          DOUBLE PRECISION NOT NULL,
		timestamp  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		user_id    BIGINT REFERENCES users(id) ON DELETE SET NULL,
		vehicle_id BIGINT REFERENCES vehicles(id) ON DELETE SET NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_alerts_timestamp ON alerts (timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_user ON alerts (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_vehicle ON alerts (vehicle_id)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_severity ON alerts (severity)`,
	`CREATE INDEX IF NOT EXISTS idx_alerts_status ON alerts (status)`,
	`CREATE INDEX IF NOT EXISTS idx_gps_device ON gps_data (device_id, timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_accel_device ON accelerometer_data (device_id, timestamp DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_gyro_device ON gyroscope_data (device_id, timestamp DESC)`,
}

// Migrate applies the schema. Safe to run on every startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
