package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type JourneyStatus string

const (
	JourneyPending   JourneyStatus = "pending"
	JourneyInTransit JourneyStatus = "in-transit"
	JourneyDelivered JourneyStatus = "delivered"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingFailed    BookingStatus = "failed"
)

const (
	DefaultCourier     = "Dropper Group"
	NoTrackingNumber   = "N/A"
	bookingSuccessCode = 200
)

type Contact struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
	IDNumber string `json:"id_number,omitempty"`
}

// FirstLastName splits a full name on the first space. Single-word names
// yield an empty last name.
func (c Contact) FirstLastName() (string, string) {
	name := strings.TrimSpace(c.Name)
	first, last, _ := strings.Cut(name, " ")
	return first, strings.TrimSpace(last)
}

// One parcel journey per bag. Only journeys with a confirmed booking are
// ever persisted.
type ParcelJourney struct {
	BagID               string               `json:"bag_id"`
	Customer            Contact              `json:"customer"`
	Recipient           Contact              `json:"recipient"`
	FromLocation        Location             `json:"from_location"`
	ToLocation          Location             `json:"to_location"`
	ParcelSize          ParcelSize           `json:"parcel_size"`
	NumberOfBoxes       int                  `json:"number_of_boxes"`
	SpecialInstructions string               `json:"special_instructions,omitempty"`
	Status              JourneyStatus        `json:"status"`
	BookingStatus       BookingStatus        `json:"booking_status"`
	TrackingNumber      string               `json:"tracking_number,omitempty"`
	CourierCompany      string               `json:"courier_company,omitempty"`
	BookingConfirmation *BookingConfirmation `json:"booking_confirmation,omitempty"`
	CreatedAt           time.Time            `json:"created_at"`
}

// Validate checks the fields a booking cannot be made without.
func (j ParcelJourney) Validate() error {
	var missing []string
	if strings.TrimSpace(j.BagID) == "" {
		missing = append(missing, "bag_id")
	}
	if strings.TrimSpace(j.Customer.Name) == "" {
		missing = append(missing, "customer.name")
	}
	if strings.TrimSpace(j.Customer.Phone) == "" {
		missing = append(missing, "customer.phone")
	}
	if strings.TrimSpace(j.Recipient.Name) == "" {
		missing = append(missing, "recipient.name")
	}
	if strings.TrimSpace(j.Recipient.Phone) == "" {
		missing = append(missing, "recipient.phone")
	}
	if j.FromLocation.Name == "" && j.FromLocation.Address == "" {
		missing = append(missing, "from_location")
	}
	if j.ToLocation.Name == "" && j.ToLocation.Address == "" {
		missing = append(missing, "to_location")
	}
	if !j.ParcelSize.Valid() {
		missing = append(missing, "parcel_size")
	}

	if len(missing) > 0 {
		return fmt.Errorf("validate journey: missing %s: %w", strings.Join(missing, ", "), ErrInvalidInput)
	}
	return nil
}

// Confirm records a successful booking on the journey.
func (j *ParcelJourney) Confirm(bc *BookingConfirmation, provider string) {
	j.BookingConfirmation = bc
	j.BookingStatus = BookingConfirmed
	j.TrackingNumber = bc.Reference()

	j.CourierCompany = provider
	if strings.TrimSpace(j.CourierCompany) == "" {
		j.CourierCompany = DefaultCourier
	}
}

// Courier identifiers may arrive as JSON strings or numbers.
type ResponseID string

func (r *ResponseID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = ResponseID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("response id: %w", err)
	}
	*r = ResponseID(n.String())
	return nil
}

// Snapshot of the courier's booking response. Pointer fields distinguish
// null or absent values from empty ones.
type BookingConfirmation struct {
	OID         *ResponseID `json:"oid"`
	BusinessKey *ResponseID `json:"businessKey"`
	TrackNo     *ResponseID `json:"trackNo"`
	StatusCode  *int        `json:"statusCode"`
	Message     string      `json:"message,omitempty"`
	Link        string      `json:"link,omitempty"`
}

// Succeeded applies the courier's success rule: any of trackNo, businessKey
// or oid present, or statusCode 200. The HTTP status of the response plays
// no part.
func (b *BookingConfirmation) Succeeded() bool {
	if b == nil {
		return false
	}
	if b.TrackNo != nil || b.BusinessKey != nil || b.OID != nil {
		return true
	}
	return b.StatusCode != nil && *b.StatusCode == bookingSuccessCode
}

// Reference is the best available tracking reference for the booking.
func (b *BookingConfirmation) Reference() string {
	if b == nil {
		return NoTrackingNumber
	}
	for _, id := range []*ResponseID{b.TrackNo, b.BusinessKey, b.OID} {
		if id != nil && *id != "" {
			return string(*id)
		}
	}
	return NoTrackingNumber
}

func (b *BookingConfirmation) String() string {
	if b == nil {
		return "<nil>"
	}
	code := "null"
	if b.StatusCode != nil {
		code = fmt.Sprint(*b.StatusCode)
	}
	return fmt.Sprintf("ref=%s status_code=%s message=%q", b.Reference(), code, b.Message)
}
