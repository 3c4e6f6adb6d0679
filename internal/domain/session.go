package domain

import (
	"fmt"
	"time"
)

type JourneyState string

const (
	StateIdle              JourneyState = "idle"
	StateQuotesLoading     JourneyState = "quotes_loading"
	StateQuotesReady       JourneyState = "quotes_ready"
	StateBooking           JourneyState = "booking"
	StateBookingFailed     JourneyState = "booking_failed"
	StateBookingSucceeded  JourneyState = "booking_succeeded"
	StatePersisted         JourneyState = "persisted"
	StateNotificationsSent JourneyState = "notifications_sent"
)

// Session holds the state of one parcel configuration flow, from the first
// parcel input through to a booked journey.
//
// Inputs (size, box count, locations) carry a version. Every change bumps it,
// discards quotes and clears the selection, so a quote result computed for an
// older version is dropped when it arrives.
type Session struct {
	ID            string       `json:"id"`
	BagID         string       `json:"bag_id"`
	FromQR        bool         `json:"from_qr"`
	State         JourneyState `json:"state"`
	ParcelSize    ParcelSize   `json:"parcel_size,omitempty"`
	NumberOfBoxes int          `json:"number_of_boxes"`
	From          *Location    `json:"from_location,omitempty"`
	To            *Location    `json:"to_location,omitempty"`

	Quotes          []Quote `json:"quotes"`
	SelectedQuoteID string  `json:"selected_quote_id,omitempty"`
	QuotesError     string  `json:"quotes_error,omitempty"`
	LastError       string  `json:"last_error,omitempty"`

	Journey   *ParcelJourney `json:"journey,omitempty"`
	CreatedAt time.Time      `json:"created_at"`

	version uint64
}

func NewSession(id, bagID string, fromQR bool, now time.Time) *Session {
	return &Session{
		ID:            id,
		BagID:         bagID,
		FromQR:        fromQR,
		State:         StateIdle,
		NumberOfBoxes: MinBoxes,
		CreatedAt:     now,
	}
}

// ReadyForQuotes reports whether size and both locations are set.
func (s *Session) ReadyForQuotes() bool {
	return s.ParcelSize.Valid() && s.From != nil && s.To != nil
}

func (s *Session) Version() uint64 { return s.version }

func (s *Session) SetParcelSize(size ParcelSize) error {
	if !size.Valid() {
		return fmt.Errorf("set parcel size %q: %w", size, ErrInvalidInput)
	}
	if err := s.editable(); err != nil {
		return err
	}
	if size == s.ParcelSize {
		return nil
	}
	s.ParcelSize = size
	s.inputsChanged()
	return nil
}

func (s *Session) SetBoxes(n int) error {
	if err := s.editable(); err != nil {
		return err
	}
	n = ClampBoxes(n)
	if n == s.NumberOfBoxes {
		return nil
	}
	s.NumberOfBoxes = n
	s.inputsChanged()
	return nil
}

func (s *Session) SetFrom(loc Location) error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.From != nil && *s.From == loc {
		return nil
	}
	s.From = &loc
	s.inputsChanged()
	return nil
}

func (s *Session) SetTo(loc Location) error {
	if err := s.editable(); err != nil {
		return err
	}
	if s.To != nil && *s.To == loc {
		return nil
	}
	s.To = &loc
	s.inputsChanged()
	return nil
}

// Reload discards the current quotes and asks for a fresh set without
// changing the inputs.
func (s *Session) Reload() error {
	if err := s.editable(); err != nil {
		return err
	}
	s.inputsChanged()
	if s.State != StateQuotesLoading {
		return fmt.Errorf("reload quotes: %w", ErrInvalidInput)
	}
	return nil
}

// BeginQuotes returns the input version a quote fetch must report back with.
func (s *Session) BeginQuotes() (uint64, error) {
	if s.State != StateQuotesLoading {
		return 0, fmt.Errorf("begin quotes from %s: %w", s.State, ErrInvalidTransition)
	}
	return s.version, nil
}

// QuotesLoaded stores the cheapest quote per category. It returns false and
// changes nothing when the inputs moved on since the fetch began.
func (s *Session) QuotesLoaded(version uint64, quotes []Quote) bool {
	if version != s.version || s.State != StateQuotesLoading {
		return false
	}
	s.Quotes = CheapestByCategory(quotes)
	s.QuotesError = ""
	s.State = StateQuotesReady
	return true
}

// QuotesFailed leaves the session with no quotes and a blocking error.
func (s *Session) QuotesFailed(version uint64, msg string) bool {
	if version != s.version || s.State != StateQuotesLoading {
		return false
	}
	s.Quotes = nil
	s.QuotesError = msg
	s.State = StateQuotesReady
	return true
}

func (s *Session) SelectQuote(id string) error {
	if s.State != StateQuotesReady && s.State != StateBookingFailed {
		return fmt.Errorf("select quote from %s: %w", s.State, ErrInvalidTransition)
	}
	if _, ok := FindQuote(s.Quotes, id); !ok {
		return fmt.Errorf("select quote %q: %w", id, ErrQuoteNotFound)
	}
	s.SelectedQuoteID = id
	return nil
}

func (s *Session) SelectedQuote() (Quote, bool) {
	if s.SelectedQuoteID == "" {
		return Quote{}, false
	}
	return FindQuote(s.Quotes, s.SelectedQuoteID)
}

// BeginBooking moves to Booking and returns the selected quote. An explicit
// selection is required.
func (s *Session) BeginBooking() (Quote, error) {
	if !s.ReadyForQuotes() {
		return Quote{}, fmt.Errorf("begin booking: parcel size and both locations are required: %w", ErrInvalidInput)
	}
	if s.State != StateQuotesReady && s.State != StateBookingFailed {
		return Quote{}, fmt.Errorf("begin booking from %s: %w", s.State, ErrInvalidTransition)
	}
	q, ok := s.SelectedQuote()
	if !ok {
		return Quote{}, fmt.Errorf("begin booking: %w", ErrNoQuoteSelected)
	}

	s.LastError = ""
	s.State = StateBooking
	return q, nil
}

// FailBooking returns the session to a selectable state. Quotes and the
// selection are kept so the user can resubmit or pick another quote.
func (s *Session) FailBooking(msg string) error {
	if s.State != StateBooking {
		return fmt.Errorf("fail booking from %s: %w", s.State, ErrInvalidTransition)
	}
	s.LastError = msg
	s.State = StateBookingFailed
	return nil
}

func (s *Session) BookingSucceeded(j ParcelJourney) error {
	if s.State != StateBooking {
		return fmt.Errorf("booking succeeded from %s: %w", s.State, ErrInvalidTransition)
	}
	s.Journey = &j
	s.State = StateBookingSucceeded
	return nil
}

func (s *Session) MarkPersisted() error {
	if s.State != StateBookingSucceeded {
		return fmt.Errorf("mark persisted from %s: %w", s.State, ErrInvalidTransition)
	}
	s.State = StatePersisted
	return nil
}

// MarkNotified ends the flow. Notification does not require persistence to
// have succeeded, only the booking.
func (s *Session) MarkNotified() error {
	if s.State != StatePersisted && s.State != StateBookingSucceeded {
		return fmt.Errorf("mark notified from %s: %w", s.State, ErrInvalidTransition)
	}
	s.State = StateNotificationsSent
	return nil
}

func (s *Session) Done() bool { return s.State == StateNotificationsSent }

// Clone returns a copy that shares no mutable state with s.
func (s *Session) Clone() *Session {
	c := *s
	c.Quotes = append([]Quote(nil), s.Quotes...)
	if s.From != nil {
		from := *s.From
		c.From = &from
	}
	if s.To != nil {
		to := *s.To
		c.To = &to
	}
	if s.Journey != nil {
		j := *s.Journey
		c.Journey = &j
	}
	return &c
}

func (s *Session) editable() error {
	switch s.State {
	case StateBooking, StateBookingSucceeded, StatePersisted, StateNotificationsSent:
		return fmt.Errorf("change parcel inputs in %s: %w", s.State, ErrInvalidTransition)
	}
	return nil
}

func (s *Session) inputsChanged() {
	s.version++
	s.Quotes = nil
	s.SelectedQuoteID = ""
	s.QuotesError = ""
	if s.ReadyForQuotes() {
		s.State = StateQuotesLoading
	} else {
		s.State = StateIdle
	}
}
