package dto

import (
	"sparcel-journey-service/internal/domain"
	"time"
)

type StartSessionRequest struct {
	BagID string `json:"bag_id"`
}

// LocationInput is either a full location or just the name of a partner
// point from the catalog.
type LocationInput struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func (l LocationInput) HasCoordinates() bool {
	return l.Lat != 0 || l.Lng != 0
}

type UpdateParcelRequest struct {
	ParcelSize    *string        `json:"parcel_size"`
	NumberOfBoxes *int           `json:"number_of_boxes"`
	FromLocation  *LocationInput `json:"from_location"`
	ToLocation    *LocationInput `json:"to_location"`
	Reload        bool           `json:"reload"`
}

type SelectQuoteRequest struct {
	QuoteID string `json:"quote_id"`
}

type ContactInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	IDNumber string `json:"id_number"`
}

func (c ContactInput) Contact() domain.Contact {
	return domain.Contact{Name: c.Name, Phone: c.Phone, Email: c.Email, IDNumber: c.IDNumber}
}

type SubmitRequest struct {
	Customer            ContactInput `json:"customer"`
	Recipient           ContactInput `json:"recipient"`
	SpecialInstructions string       `json:"special_instructions"`
}

type SessionResponse struct {
	ID              string                `json:"id"`
	BagID           string                `json:"bag_id"`
	FromQR          bool                  `json:"from_qr"`
	State           string                `json:"state"`
	Completed       bool                  `json:"completed"`
	ParcelSize      string                `json:"parcel_size"`
	NumberOfBoxes   int                   `json:"number_of_boxes"`
	FromLocation    *domain.Location      `json:"from_location"`
	ToLocation      *domain.Location      `json:"to_location"`
	Quotes          []domain.Quote        `json:"quotes"`
	SelectedQuoteID string                `json:"selected_quote_id,omitempty"`
	QuotesError     string                `json:"quotes_error,omitempty"`
	LastError       string                `json:"last_error,omitempty"`
	Journey         *domain.ParcelJourney `json:"journey,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
}

func NewSessionResponse(s *domain.Session) SessionResponse {
	quotes := s.Quotes
	if quotes == nil {
		quotes = []domain.Quote{}
	}
	return SessionResponse{
		ID:              s.ID,
		BagID:           s.BagID,
		FromQR:          s.FromQR,
		State:           string(s.State),
		Completed:       s.Done(),
		ParcelSize:      string(s.ParcelSize),
		NumberOfBoxes:   s.NumberOfBoxes,
		FromLocation:    s.From,
		ToLocation:      s.To,
		Quotes:          quotes,
		SelectedQuoteID: s.SelectedQuoteID,
		QuotesError:     s.QuotesError,
		LastError:       s.LastError,
		Journey:         s.Journey,
		CreatedAt:       s.CreatedAt,
	}
}
