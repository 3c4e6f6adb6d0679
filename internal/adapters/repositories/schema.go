package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var postgresSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS parcel_journeys (
		id UUID PRIMARY KEY,
		bag_id TEXT NOT NULL UNIQUE,
		customer_name TEXT NOT NULL,
		customer_phone TEXT NOT NULL,
		customer_email TEXT,
		customer_id_number TEXT,
		recipient_name TEXT NOT NULL,
		recipient_phone TEXT NOT NULL,
		recipient_email TEXT,
		from_location JSONB NOT NULL,
		to_location JSONB NOT NULL,
		parcel_size TEXT NOT NULL,
		number_of_boxes INTEGER NOT NULL DEFAULT 1,
		special_instructions TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		booking_status TEXT NOT NULL,
		tracking_number TEXT,
		courier_company TEXT,
		booking_confirmation JSONB,
		oid TEXT,
		business_key TEXT,
		track_no TEXT,
		tracking_link TEXT,
		booking_message TEXT,
		booking_status_code INTEGER,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS qr_codes (
		id UUID PRIMARY KEY,
		bag_id TEXT NOT NULL UNIQUE,
		qr_url TEXT NOT NULL,
		image_url TEXT NOT NULL,
		storage_path TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL,
		used_at TIMESTAMPTZ
	);
	`,
	`
	CREATE INDEX IF NOT EXISTS idx_qr_codes_created_at
	ON qr_codes(created_at DESC);
	`,
}

var sqliteSchema = []string{
	`
	CREATE TABLE IF NOT EXISTS parcel_journeys (
		bag_id TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS qr_codes (
		bag_id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		used_at TEXT
	);
	`,
	`
	CREATE TABLE IF NOT EXISTS geocode_cache (
		query TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	);
	`,
}

// Initialize the remote Postgres schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, postgresSchema)
}

// Initialize the local SQLite fallback schema.
func InitSqliteSchema(ctx context.Context, db *sql.DB) error {
	return initSchema(ctx, db, sqliteSchema)
}

func initSchema(ctx context.Context, db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
