package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the QRCodeRepository port.
type PostgresQRCodeRepository struct{ DB *sql.DB }

func NewPostgresQRCodeRepository(db *sql.DB) *PostgresQRCodeRepository {
	return &PostgresQRCodeRepository{DB: db}
}

func (r *PostgresQRCodeRepository) Create(ctx context.Context, qr domain.QRCode) (err error) {
	defer obs.Time(ctx, "postgres.qr_codes.Create")(&err)

	if r.DB == nil {
		return errors.New("postgres qr code repository: DB is nil")
	}

	_, err = r.DB.ExecContext(ctx, `
	INSERT INTO qr_codes (
		id,
		bag_id,
		qr_url,
		image_url,
		storage_path,
		status,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, uuid.NewString(), qr.BagID, qr.QRURL, qr.ImageURL,
		sql.NullString{String: qr.StoragePath, Valid: qr.StoragePath != ""},
		string(qr.Status), qr.CreatedAt)
	if err != nil {
		return fmt.Errorf("create qr code bag_id=%s: %w", qr.BagID, err)
	}
	return nil
}

const qrColumns = `bag_id, qr_url, image_url, storage_path, status, created_at, used_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQRCode(row rowScanner) (domain.QRCode, error) {
	var (
		qr          domain.QRCode
		storagePath sql.NullString
		status      string
		usedAt      sql.NullTime
	)
	if err := row.Scan(&qr.BagID, &qr.QRURL, &qr.ImageURL, &storagePath, &status, &qr.CreatedAt, &usedAt); err != nil {
		return domain.QRCode{}, err
	}
	qr.StoragePath = storagePath.String
	qr.Status = domain.QRStatus(status)
	if usedAt.Valid {
		t := usedAt.Time
		qr.UsedAt = &t
	}
	return qr, nil
}

func (r *PostgresQRCodeRepository) Get(ctx context.Context, bagID string) (domain.QRCode, error) {
	if r.DB == nil {
		return domain.QRCode{}, errors.New("postgres qr code repository: DB is nil")
	}

	row := r.DB.QueryRowContext(ctx, `SELECT `+qrColumns+` FROM qr_codes WHERE bag_id = $1;`, bagID)
	qr, err := scanQRCode(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.QRCode{}, fmt.Errorf("get qr code bag_id=%s: %w", bagID, domain.ErrQRCodeNotFound)
	}
	if err != nil {
		return domain.QRCode{}, fmt.Errorf("get qr code bag_id=%s: %w", bagID, err)
	}
	return qr, nil
}

// Return one page of codes, newest first, and the total number of codes.
func (r *PostgresQRCodeRepository) List(ctx context.Context, offset, limit int) (_ []domain.QRCode, _ int, err error) {
	defer obs.Time(ctx, "postgres.qr_codes.List")(&err)

	if r.DB == nil {
		return nil, 0, errors.New("postgres qr code repository: DB is nil")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM qr_codes;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("list qr codes: count: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT `+qrColumns+`
	FROM qr_codes
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2;
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list qr codes: query qr_codes table: %w", err)
	}
	defer rows.Close()

	codes := make([]domain.QRCode, 0, limit)
	for rows.Next() {
		qr, err := scanQRCode(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list qr codes: scan row: %w", err)
		}
		codes = append(codes, qr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list qr codes: row iteration: %w", err)
	}

	return codes, total, nil
}

func (r *PostgresQRCodeRepository) Stats(ctx context.Context) (domain.QRStats, error) {
	if r.DB == nil {
		return domain.QRStats{}, errors.New("postgres qr code repository: DB is nil")
	}

	var s domain.QRStats
	err := r.DB.QueryRowContext(ctx, `
	SELECT
		COUNT(*),
		COUNT(*) FILTER (WHERE status = 'active'),
		COUNT(*) FILTER (WHERE used_at IS NOT NULL)
	FROM qr_codes;
	`).Scan(&s.Total, &s.Active, &s.Used)
	if err != nil {
		return domain.QRStats{}, fmt.Errorf("qr code stats: %w", err)
	}
	s.Unused = s.Total - s.Used
	return s, nil
}

func (r *PostgresQRCodeRepository) Delete(ctx context.Context, bagID string) error {
	if r.DB == nil {
		return errors.New("postgres qr code repository: DB is nil")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM qr_codes WHERE bag_id = $1;`, bagID)
	if err != nil {
		return fmt.Errorf("delete qr code bag_id=%s: %w", bagID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete qr code bag_id=%s: %w", bagID, domain.ErrQRCodeNotFound)
	}
	return nil
}
