package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"time"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the JourneyStore port.
type PostgresJourneyStore struct {
	DB  *sql.DB
	now func() time.Time
}

func NewPostgresJourneyStore(db *sql.DB) *PostgresJourneyStore {
	return &PostgresJourneyStore{DB: db, now: time.Now}
}

// Upsert the journey keyed by bag_id. created_at is written once.
func (s *PostgresJourneyStore) Save(ctx context.Context, j domain.ParcelJourney) (err error) {
	defer obs.Time(ctx, "postgres.journeys.Save")(&err)

	if s.DB == nil {
		return errors.New("postgres journey store: DB is nil")
	}

	from, err := json.Marshal(j.FromLocation)
	if err != nil {
		return fmt.Errorf("save journey bag_id=%s: encode from_location: %w", j.BagID, err)
	}
	to, err := json.Marshal(j.ToLocation)
	if err != nil {
		return fmt.Errorf("save journey bag_id=%s: encode to_location: %w", j.BagID, err)
	}

	var confirmation []byte
	var oid, businessKey, trackNo, link, message sql.NullString
	var statusCode sql.NullInt64
	if bc := j.BookingConfirmation; bc != nil {
		confirmation, err = json.Marshal(bc)
		if err != nil {
			return fmt.Errorf("save journey bag_id=%s: encode booking_confirmation: %w", j.BagID, err)
		}
		oid = nullID(bc.OID)
		businessKey = nullID(bc.BusinessKey)
		trackNo = nullID(bc.TrackNo)
		link = sql.NullString{String: bc.Link, Valid: bc.Link != ""}
		message = sql.NullString{String: bc.Message, Valid: bc.Message != ""}
		if bc.StatusCode != nil {
			statusCode = sql.NullInt64{Int64: int64(*bc.StatusCode), Valid: true}
		}
	}

	createdAt := j.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now().UTC()
	}

	query := `
	INSERT INTO parcel_journeys (
		id, bag_id,
		customer_name, customer_phone, customer_email, customer_id_number,
		recipient_name, recipient_phone, recipient_email,
		from_location, to_location,
		parcel_size, number_of_boxes, special_instructions,
		status, booking_status, tracking_number, courier_company,
		booking_confirmation, oid, business_key, track_no,
		tracking_link, booking_message, booking_status_code,
		created_at, updated_at
	)
	VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $26
	)
	ON CONFLICT (bag_id) DO UPDATE
	SET customer_name = EXCLUDED.customer_name,
		customer_phone = EXCLUDED.customer_phone,
		customer_email = EXCLUDED.customer_email,
		customer_id_number = EXCLUDED.customer_id_number,
		recipient_name = EXCLUDED.recipient_name,
		recipient_phone = EXCLUDED.recipient_phone,
		recipient_email = EXCLUDED.recipient_email,
		from_location = EXCLUDED.from_location,
		to_location = EXCLUDED.to_location,
		parcel_size = EXCLUDED.parcel_size,
		number_of_boxes = EXCLUDED.number_of_boxes,
		special_instructions = EXCLUDED.special_instructions,
		status = EXCLUDED.status,
		booking_status = EXCLUDED.booking_status,
		tracking_number = EXCLUDED.tracking_number,
		courier_company = EXCLUDED.courier_company,
		booking_confirmation = EXCLUDED.booking_confirmation,
		oid = EXCLUDED.oid,
		business_key = EXCLUDED.business_key,
		track_no = EXCLUDED.track_no,
		tracking_link = EXCLUDED.tracking_link,
		booking_message = EXCLUDED.booking_message,
		booking_status_code = EXCLUDED.booking_status_code,
		updated_at = EXCLUDED.updated_at;
	`

	_, err = s.DB.ExecContext(ctx, query,
		uuid.NewString(), j.BagID,
		j.Customer.Name, j.Customer.Phone, j.Customer.Email, j.Customer.IDNumber,
		j.Recipient.Name, j.Recipient.Phone, j.Recipient.Email,
		string(from), string(to),
		string(j.ParcelSize), j.NumberOfBoxes, j.SpecialInstructions,
		string(j.Status), string(j.BookingStatus), j.TrackingNumber, j.CourierCompany,
		nullJSON(confirmation), oid, businessKey, trackNo,
		link, message, statusCode,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("save journey bag_id=%s: upsert parcel_journeys: %w", j.BagID, err)
	}

	return nil
}

// Return the journey for bagID, or nil when none exists.
func (s *PostgresJourneyStore) GetByBagID(ctx context.Context, bagID string) (_ *domain.ParcelJourney, err error) {
	defer obs.Time(ctx, "postgres.journeys.GetByBagID")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres journey store: DB is nil")
	}

	query := `
	SELECT
		bag_id,
		customer_name, customer_phone, customer_email, customer_id_number,
		recipient_name, recipient_phone, recipient_email,
		from_location, to_location,
		parcel_size, number_of_boxes, special_instructions,
		status, booking_status, tracking_number, courier_company,
		booking_confirmation, created_at
	FROM parcel_journeys
	WHERE bag_id = $1;
	`

	var (
		j                    domain.ParcelJourney
		from, to             []byte
		confirmation         []byte
		customerEmail        sql.NullString
		customerIDNumber     sql.NullString
		recipientEmail       sql.NullString
		specialInstructions  sql.NullString
		trackingNumber       sql.NullString
		courierCompany       sql.NullString
		size, status, bookSt string
	)

	err = s.DB.QueryRowContext(ctx, query, bagID).Scan(
		&j.BagID,
		&j.Customer.Name, &j.Customer.Phone, &customerEmail, &customerIDNumber,
		&j.Recipient.Name, &j.Recipient.Phone, &recipientEmail,
		&from, &to,
		&size, &j.NumberOfBoxes, &specialInstructions,
		&status, &bookSt, &trackingNumber, &courierCompany,
		&confirmation, &j.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get journey bag_id=%s: query parcel_journeys: %w", bagID, err)
	}

	j.Customer.Email = customerEmail.String
	j.Customer.IDNumber = customerIDNumber.String
	j.Recipient.Email = recipientEmail.String
	j.SpecialInstructions = specialInstructions.String
	j.TrackingNumber = trackingNumber.String
	j.CourierCompany = courierCompany.String
	j.ParcelSize = domain.ParcelSize(size)
	j.Status = domain.JourneyStatus(status)
	j.BookingStatus = domain.BookingStatus(bookSt)

	if err := json.Unmarshal(from, &j.FromLocation); err != nil {
		return nil, fmt.Errorf("get journey bag_id=%s: decode from_location: %w", bagID, err)
	}
	if err := json.Unmarshal(to, &j.ToLocation); err != nil {
		return nil, fmt.Errorf("get journey bag_id=%s: decode to_location: %w", bagID, err)
	}
	if len(confirmation) > 0 {
		var bc domain.BookingConfirmation
		if err := json.Unmarshal(confirmation, &bc); err != nil {
			return nil, fmt.Errorf("get journey bag_id=%s: decode booking_confirmation: %w", bagID, err)
		}
		j.BookingConfirmation = &bc
	}

	return &j, nil
}

// Mark the issued QR code for bagID as used. Codes that are already used or
// were never issued are left alone.
func (s *PostgresJourneyStore) MarkUsed(ctx context.Context, bagID string) (err error) {
	defer obs.Time(ctx, "postgres.qr_codes.MarkUsed")(&err)

	if s.DB == nil {
		return errors.New("postgres journey store: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `
	UPDATE qr_codes
	SET status = 'used',
		used_at = $2
	WHERE bag_id = $1
		AND status = 'active';
	`, bagID, s.now().UTC())
	if err != nil {
		return fmt.Errorf("mark qr used bag_id=%s: update qr_codes: %w", bagID, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		log.Printf("mark qr used: no active qr code bag_id=%s", bagID)
	}

	return nil
}

func nullID(id *domain.ResponseID) sql.NullString {
	if id == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*id), Valid: true}
}

func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
