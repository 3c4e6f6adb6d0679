package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sparcel-journey-service/internal/domain"
	"time"
)

// SQLite-backed local JourneyStore. Journeys are kept as JSON documents
// keyed by bag id, and consumed QR codes are recorded in a local marker table.
type SqliteJourneyStore struct {
	DB  *sql.DB
	now func() time.Time
}

func NewSqliteJourneyStore(db *sql.DB) *SqliteJourneyStore {
	return &SqliteJourneyStore{DB: db, now: time.Now}
}

// Insert or replace the journey, keeping the created_at of an existing record.
func (s *SqliteJourneyStore) Save(ctx context.Context, j domain.ParcelJourney) error {
	if s.DB == nil {
		return errors.New("sqlite journey store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save journey bag_id=%s: begin tx: %w", j.BagID, err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM parcel_journeys WHERE bag_id = ?;`, j.BagID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if j.CreatedAt.IsZero() {
			j.CreatedAt = s.now().UTC()
		}
	case err != nil:
		return fmt.Errorf("save journey bag_id=%s: read created_at: %w", j.BagID, err)
	default:
		createdAt, err := time.Parse(time.RFC3339Nano, existing)
		if err != nil {
			return fmt.Errorf("save journey bag_id=%s: parse created_at: %w", j.BagID, err)
		}
		j.CreatedAt = createdAt
	}

	payload, err := json.Marshal(j)
	if err != nil {
		return fmt.Errorf("save journey bag_id=%s: encode: %w", j.BagID, err)
	}

	query := `
	INSERT INTO parcel_journeys (
		bag_id,
		payload,
		created_at,
		updated_at
	)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (bag_id) DO UPDATE
	SET payload = excluded.payload,
		updated_at = excluded.updated_at;
	`
	if _, err := tx.ExecContext(ctx, query,
		j.BagID,
		string(payload),
		j.CreatedAt.UTC().Format(time.RFC3339Nano),
		s.now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("save journey bag_id=%s: upsert: %w", j.BagID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save journey bag_id=%s: commit tx: %w", j.BagID, err)
	}

	return nil
}

// Return the journey for bagID, or nil when none exists.
func (s *SqliteJourneyStore) GetByBagID(ctx context.Context, bagID string) (*domain.ParcelJourney, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite journey store: DB is nil")
	}

	var payload string
	err := s.DB.QueryRowContext(ctx, `
	SELECT payload
	FROM parcel_journeys
	WHERE bag_id = ?;
	`, bagID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get journey bag_id=%s: query parcel_journeys: %w", bagID, err)
	}

	var j domain.ParcelJourney
	if err := json.Unmarshal([]byte(payload), &j); err != nil {
		return nil, fmt.Errorf("get journey bag_id=%s: decode payload: %w", bagID, err)
	}
	return &j, nil
}

// Record the QR code for bagID as used. A code already marked keeps its
// original used_at.
func (s *SqliteJourneyStore) MarkUsed(ctx context.Context, bagID string) error {
	if s.DB == nil {
		return errors.New("sqlite journey store: DB is nil")
	}

	query := `
	INSERT INTO qr_codes (
		bag_id,
		status,
		used_at
	)
	VALUES (?, 'used', ?)
	ON CONFLICT (bag_id) DO UPDATE
	SET status = 'used',
		used_at = COALESCE(qr_codes.used_at, excluded.used_at);
	`
	if _, err := s.DB.ExecContext(ctx, query, bagID, s.now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("mark qr used bag_id=%s: %w", bagID, err)
	}
	return nil
}

// QRStatus reports the locally recorded status of bagID's QR code.
func (s *SqliteJourneyStore) QRStatus(ctx context.Context, bagID string) (domain.QRStatus, error) {
	var status string
	err := s.DB.QueryRowContext(ctx, `SELECT status FROM qr_codes WHERE bag_id = ?;`, bagID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.QRActive, nil
	}
	if err != nil {
		return "", fmt.Errorf("qr status bag_id=%s: %w", bagID, err)
	}
	return domain.QRStatus(status), nil
}
