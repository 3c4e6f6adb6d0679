package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/platform/obs"
	"sparcel-journey-service/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	LookupView      = "view"
	LookupConfigure = "configure"

	JourneyBookedEvent = "journey.booked"

	quotesFailedMessage = "Unable to fetch delivery quotes right now. Please try again."
)

type LookupResult struct {
	Mode    string                `json:"mode"`
	BagID   string                `json:"bag_id"`
	Journey *domain.ParcelJourney `json:"journey,omitempty"`
}

// ParcelUpdate carries the inputs a client changed. Nil fields are left alone.
type ParcelUpdate struct {
	Size   *string
	Boxes  *int
	From   *domain.Location
	To     *domain.Location
	Reload bool
}

type SubmitRequest struct {
	Customer            domain.Contact
	Recipient           domain.Contact
	SpecialInstructions string
}

// Outcome is what a submission reports back. Warnings list the follow-up
// steps that failed after a successful booking; none of them undo it.
type Outcome struct {
	BagID     string               `json:"bag_id"`
	Journey   domain.ParcelJourney `json:"journey"`
	Persisted bool                 `json:"persisted"`
	QRMarked  bool                 `json:"qr_marked_used"`
	Emails    domain.EmailResult   `json:"emails"`
	Message   string               `json:"message"`
	Warnings  []string             `json:"warnings,omitempty"`
}

type bookedEvent struct {
	Type           string    `json:"type"`
	BagID          string    `json:"bag_id"`
	TrackingNumber string    `json:"tracking_number"`
	CourierCompany string    `json:"courier_company"`
	ServiceType    string    `json:"service_type"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	FromQR         bool      `json:"from_qr"`
	BookedAt       time.Time `json:"booked_at"`
}

type OrchestratorDeps struct {
	Sessions ports.SessionStore
	Journeys ports.JourneyStore
	Quotes   ports.QuoteProvider
	Booking  ports.BookingProvider
	Notifier ports.Notifier
	Events   ports.EventPublisher
	PayFast  PayFastConfig
}

// JourneyOrchestrator drives a bag from first input to a booked, stored and
// notified journey. Session state lives in the session store; network calls
// run outside the session lock.
type JourneyOrchestrator struct {
	sessions ports.SessionStore
	journeys ports.JourneyStore
	quotes   ports.QuoteProvider
	booking  ports.BookingProvider
	notifier ports.Notifier
	events   ports.EventPublisher
	payfast  PayFastConfig

	newID func() string
	now   func() time.Time
}

func NewJourneyOrchestrator(d OrchestratorDeps) *JourneyOrchestrator {
	return &JourneyOrchestrator{
		sessions: d.Sessions,
		journeys: d.Journeys,
		quotes:   d.Quotes,
		booking:  d.Booking,
		notifier: d.Notifier,
		events:   d.Events,
		payfast:  d.PayFast,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Lookup decides what a scanned bag id opens: the read-only journey view
// when a journey exists, the configuration flow otherwise. A failing store
// read is logged and treated as "no journey".
func (o *JourneyOrchestrator) Lookup(ctx context.Context, bagID string) (LookupResult, error) {
	bagID = strings.TrimSpace(bagID)
	if bagID == "" {
		return LookupResult{}, fmt.Errorf("lookup: empty bag id: %w", domain.ErrInvalidInput)
	}

	j, err := o.journeys.GetByBagID(ctx, bagID)
	if err != nil {
		obs.Logf(ctx, "lookup bag_id=%s err=%v", bagID, err)
	}
	if j != nil {
		return LookupResult{Mode: LookupView, BagID: bagID, Journey: j}, nil
	}
	return LookupResult{Mode: LookupConfigure, BagID: bagID}, nil
}

// StartSession opens a configuration flow. A bag id comes from a scanned QR
// code; without one a new id is generated.
func (o *JourneyOrchestrator) StartSession(ctx context.Context, bagID string) (_ *domain.Session, err error) {
	defer obs.Time(ctx, "journey.StartSession")(&err)

	bagID = strings.TrimSpace(bagID)
	fromQR := bagID != ""
	if !fromQR {
		bagID = domain.NewBagID()
	}

	if fromQR {
		res, err := o.Lookup(ctx, bagID)
		if err != nil {
			return nil, fmt.Errorf("start session: %w", err)
		}
		if res.Mode == LookupView {
			return nil, fmt.Errorf("start session bag_id=%s: %w", bagID, domain.ErrAlreadyConfigured)
		}
	}

	s := domain.NewSession(o.newID(), bagID, fromQR, o.now().UTC())
	if err := o.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	obs.Logf(ctx, "session started id=%s bag_id=%s from_qr=%t", s.ID, bagID, fromQR)
	return s, nil
}

func (o *JourneyOrchestrator) Session(ctx context.Context, id string) (*domain.Session, error) {
	return o.sessions.Get(ctx, id)
}

// UpdateParcel applies input changes. When the inputs are complete and
// changed, a new quote set is fetched before returning.
func (o *JourneyOrchestrator) UpdateParcel(ctx context.Context, id string, upd ParcelUpdate) (_ *domain.Session, err error) {
	defer obs.Time(ctx, "journey.UpdateParcel")(&err)

	var (
		req     ports.QuoteRequest
		version uint64
		fetch   bool
	)
	err = o.sessions.Update(ctx, id, func(s *domain.Session) error {
		if err := applyUpdate(s, upd); err != nil {
			return err
		}
		if s.State != domain.StateQuotesLoading {
			return nil
		}
		v, err := s.BeginQuotes()
		if err != nil {
			return err
		}
		version, fetch = v, true
		req = quoteRequest(s)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update parcel session=%s: %w", id, err)
	}

	if fetch {
		o.fetchQuotes(ctx, id, version, req)
	}
	return o.sessions.Get(ctx, id)
}

func applyUpdate(s *domain.Session, upd ParcelUpdate) error {
	if upd.Size != nil {
		size, err := domain.ParseParcelSize(*upd.Size)
		if err != nil {
			return err
		}
		if err := s.SetParcelSize(size); err != nil {
			return err
		}
	}
	if upd.Boxes != nil {
		if err := s.SetBoxes(*upd.Boxes); err != nil {
			return err
		}
	}
	if upd.From != nil {
		if err := s.SetFrom(upd.From.Normalized()); err != nil {
			return err
		}
	}
	if upd.To != nil {
		if err := s.SetTo(upd.To.Normalized()); err != nil {
			return err
		}
	}
	if upd.Reload && s.State != domain.StateQuotesLoading {
		return s.Reload()
	}
	return nil
}

func quoteRequest(s *domain.Session) ports.QuoteRequest {
	return ports.QuoteRequest{
		Pickup:  *s.From,
		Dropoff: *s.To,
		Parcels: domain.ShipmentDimensions(s.ParcelSize, s.NumberOfBoxes),
	}
}

// fetchQuotes runs without the session lock. The result is recorded only if
// the inputs have not changed since version.
func (o *JourneyOrchestrator) fetchQuotes(ctx context.Context, id string, version uint64, req ports.QuoteRequest) {
	quotes, err := o.quotes.GetQuotes(ctx, req)

	uerr := o.sessions.Update(context.WithoutCancel(ctx), id, func(s *domain.Session) error {
		var applied bool
		if err != nil {
			applied = s.QuotesFailed(version, quotesFailedMessage)
		} else {
			applied = s.QuotesLoaded(version, quotes)
		}
		if !applied {
			obs.Logf(ctx, "quotes dropped session=%s version=%d current=%d", id, version, s.Version())
		}
		return nil
	})
	if err != nil {
		obs.Logf(ctx, "quotes session=%s err=%v", id, err)
	}
	if uerr != nil {
		obs.Logf(ctx, "quotes session=%s record err=%v", id, uerr)
	}
}

func (o *JourneyOrchestrator) SelectQuote(ctx context.Context, id, quoteID string) (*domain.Session, error) {
	err := o.sessions.Update(ctx, id, func(s *domain.Session) error {
		return s.SelectQuote(quoteID)
	})
	if err != nil {
		return nil, fmt.Errorf("select quote session=%s: %w", id, err)
	}
	return o.sessions.Get(ctx, id)
}

// Checkout builds the hosted payment form for the selected quote.
func (o *JourneyOrchestrator) Checkout(ctx context.Context, id string) (CheckoutForm, error) {
	s, err := o.sessions.Get(ctx, id)
	if err != nil {
		return CheckoutForm{}, fmt.Errorf("checkout session=%s: %w", id, err)
	}
	q, ok := s.SelectedQuote()
	if !ok {
		return CheckoutForm{}, fmt.Errorf("checkout session=%s: %w", id, domain.ErrNoQuoteSelected)
	}
	return BuildPayFastForm(o.payfast, q, s.BagID, s.ParcelSize)
}

// Submit books the selected quote and, only on a confirmed booking, stores
// the journey, consumes the QR code and sends the emails, in that order.
// Steps after the booking never fail the submission; they add warnings.
func (o *JourneyOrchestrator) Submit(ctx context.Context, id string, req SubmitRequest) (_ Outcome, err error) {
	defer obs.Time(ctx, "journey.Submit")(&err)

	current, err := o.sessions.Get(ctx, id)
	if err != nil {
		return Outcome{}, fmt.Errorf("submit session=%s: %w", id, err)
	}
	if existing, lerr := o.journeys.GetByBagID(ctx, current.BagID); lerr != nil {
		obs.Logf(ctx, "submit bag_id=%s lookup err=%v", current.BagID, lerr)
	} else if existing != nil {
		return Outcome{}, fmt.Errorf("submit bag_id=%s: %w", current.BagID, domain.ErrAlreadyConfigured)
	}

	var (
		draft  domain.ParcelJourney
		quote  domain.Quote
		fromQR bool
	)
	err = o.sessions.Update(ctx, id, func(s *domain.Session) error {
		if s.ReadyForQuotes() {
			draft = newDraft(s, req)
			if err := draft.Validate(); err != nil {
				return err
			}
		}
		q, err := s.BeginBooking()
		if err != nil {
			return err
		}
		quote, fromQR = q, s.FromQR
		return nil
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("submit session=%s: %w", id, err)
	}

	// The booking is real once the courier accepts it, so the remaining
	// steps run to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)

	bc, err := o.booking.Book(ctx, draft, quote)
	if err == nil && !bc.Succeeded() {
		err = fmt.Errorf("courier response %s: %w", bc, domain.ErrBookingFailed)
	}
	if err != nil {
		msg := bookingFailedMessage(bc)
		if uerr := o.sessions.Update(ctx, id, func(s *domain.Session) error { return s.FailBooking(msg) }); uerr != nil {
			obs.Logf(ctx, "submit session=%s record failure err=%v", id, uerr)
		}
		return Outcome{}, fmt.Errorf("submit bag_id=%s: %w", draft.BagID, err)
	}

	journey := draft
	journey.Confirm(bc, quote.Provider)
	journey.CreatedAt = o.now().UTC()
	obs.Logf(ctx, "booking confirmed bag_id=%s tracking=%s courier=%s", journey.BagID, journey.TrackingNumber, journey.CourierCompany)

	out := Outcome{BagID: journey.BagID, Journey: journey}
	o.advance(ctx, id, func(s *domain.Session) error { return s.BookingSucceeded(journey) })

	if err := o.journeys.Save(ctx, journey); err != nil {
		obs.Logf(ctx, "submit bag_id=%s save err=%v", journey.BagID, err)
		out.Warnings = append(out.Warnings, "journey could not be saved")
	} else {
		out.Persisted = true
		o.advance(ctx, id, (*domain.Session).MarkPersisted)
	}

	if fromQR && out.Persisted {
		if err := o.journeys.MarkUsed(ctx, journey.BagID); err != nil {
			obs.Logf(ctx, "submit bag_id=%s mark used err=%v", journey.BagID, err)
			out.Warnings = append(out.Warnings, "qr code could not be marked as used")
		} else {
			out.QRMarked = true
		}
	}

	out.Emails = o.notify(ctx, journey)
	if !out.Emails.Success {
		out.Warnings = append(out.Warnings, out.Emails.Message)
	}
	o.advance(ctx, id, (*domain.Session).MarkNotified)

	o.publish(ctx, journey, quote, fromQR)

	out.Message = fmt.Sprintf("Booking confirmed! Tracking number: %s", journey.TrackingNumber)
	return out, nil
}

func newDraft(s *domain.Session, req SubmitRequest) domain.ParcelJourney {
	return domain.ParcelJourney{
		BagID:               s.BagID,
		Customer:            trimContact(req.Customer),
		Recipient:           trimContact(req.Recipient),
		FromLocation:        *s.From,
		ToLocation:          *s.To,
		ParcelSize:          s.ParcelSize,
		NumberOfBoxes:       s.NumberOfBoxes,
		SpecialInstructions: strings.TrimSpace(req.SpecialInstructions),
		Status:              domain.JourneyPending,
		BookingStatus:       domain.BookingPending,
	}
}

func trimContact(c domain.Contact) domain.Contact {
	return domain.Contact{
		Name:     strings.TrimSpace(c.Name),
		Phone:    strings.TrimSpace(c.Phone),
		Email:    strings.TrimSpace(c.Email),
		IDNumber: strings.TrimSpace(c.IDNumber),
	}
}

func bookingFailedMessage(bc *domain.BookingConfirmation) string {
	if bc != nil && bc.Message != "" {
		return fmt.Sprintf("Booking failed: %s. Please try again or select a different quote.", bc.Message)
	}
	return "Booking failed. Please try again or select a different quote."
}

func (o *JourneyOrchestrator) advance(ctx context.Context, id string, step func(s *domain.Session) error) {
	if err := o.sessions.Update(ctx, id, step); err != nil {
		obs.Logf(ctx, "session=%s advance err=%v", id, err)
	}
}

func (o *JourneyOrchestrator) notify(ctx context.Context, j domain.ParcelJourney) domain.EmailResult {
	if o.notifier == nil {
		return domain.NewEmailResult(false, false)
	}
	res, err := o.notifier.SendBookingEmails(ctx, j.EmailData())
	if err != nil {
		obs.Logf(ctx, "notify bag_id=%s err=%v", j.BagID, err)
		return domain.NewEmailResult(false, false)
	}
	return res
}

func (o *JourneyOrchestrator) publish(ctx context.Context, j domain.ParcelJourney, q domain.Quote, fromQR bool) {
	if o.events == nil {
		return
	}
	payload, err := json.Marshal(bookedEvent{
		Type:           JourneyBookedEvent,
		BagID:          j.BagID,
		TrackingNumber: j.TrackingNumber,
		CourierCompany: j.CourierCompany,
		ServiceType:    q.ServiceType,
		Price:          q.Price,
		Currency:       q.Currency,
		FromQR:         fromQR,
		BookedAt:       j.CreatedAt,
	})
	if err == nil {
		err = o.events.Publish(ctx, j.BagID, payload)
	}
	if err != nil {
		obs.Logf(ctx, "publish %s bag_id=%s err=%v", JourneyBookedEvent, j.BagID, err)
	}
}
