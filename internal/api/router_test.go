package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sparcel-journey-service/internal/adapters/catalog"
	"sparcel-journey-service/internal/adapters/sessions"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/ports"
	"sparcel-journey-service/internal/services"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJourneys struct {
	mu       sync.Mutex
	journeys map[string]domain.ParcelJourney
}

func (s *stubJourneys) Save(ctx context.Context, j domain.ParcelJourney) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journeys[j.BagID] = j
	return nil
}

func (s *stubJourneys) GetByBagID(ctx context.Context, bagID string) (*domain.ParcelJourney, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.journeys[bagID]
	if !ok {
		return nil, nil
	}
	return &j, nil
}

func (s *stubJourneys) MarkUsed(ctx context.Context, bagID string) error { return nil }

type stubCourier struct {
	bc *domain.BookingConfirmation
}

func (s *stubCourier) GetQuotes(ctx context.Context, req ports.QuoteRequest) ([]domain.Quote, error) {
	return []domain.Quote{
		{ID: "q-1", ServiceID: "svc", QuotesID: "QID", Price: 120, Provider: "Courier A", DeliveryCategory: domain.CategoryOneTwo},
		{ID: "q-2", ServiceID: "svc", QuotesID: "QID", Price: 140, Provider: "Courier B", DeliveryCategory: domain.CategoryOneTwo},
	}, nil
}

func (s *stubCourier) Book(ctx context.Context, j domain.ParcelJourney, q domain.Quote) (*domain.BookingConfirmation, error) {
	return s.bc, nil
}

type stubNotifier struct{}

func (stubNotifier) SendBookingEmails(ctx context.Context, d domain.BookingEmailData) (domain.EmailResult, error) {
	return domain.NewEmailResult(d.Customer.Email != "", d.Recipient.Email != ""), nil
}

type stubQRRepo struct {
	codes map[string]domain.QRCode
}

func (s *stubQRRepo) Create(ctx context.Context, qr domain.QRCode) error {
	s.codes[qr.BagID] = qr
	return nil
}

func (s *stubQRRepo) Get(ctx context.Context, bagID string) (domain.QRCode, error) {
	qr, ok := s.codes[bagID]
	if !ok {
		return domain.QRCode{}, domain.ErrQRCodeNotFound
	}
	return qr, nil
}

func (s *stubQRRepo) List(ctx context.Context, offset, limit int) ([]domain.QRCode, int, error) {
	return nil, len(s.codes), nil
}

func (s *stubQRRepo) Stats(ctx context.Context) (domain.QRStats, error) {
	return domain.QRStats{Total: len(s.codes), Active: len(s.codes), Unused: len(s.codes)}, nil
}

func (s *stubQRRepo) Delete(ctx context.Context, bagID string) error {
	if _, ok := s.codes[bagID]; !ok {
		return domain.ErrQRCodeNotFound
	}
	delete(s.codes, bagID)
	return nil
}

func newTestServer(t *testing.T, bc *domain.BookingConfirmation) (*httptest.Server, *stubJourneys) {
	t.Helper()

	journeys := &stubJourneys{journeys: map[string]domain.ParcelJourney{}}
	courier := &stubCourier{bc: bc}
	orch := services.NewJourneyOrchestrator(services.OrchestratorDeps{
		Sessions: sessions.NewMemoryStore(time.Hour, time.Hour),
		Journeys: journeys,
		Quotes:   courier,
		Booking:  courier,
		Notifier: stubNotifier{},
	})

	h := NewRouter(Deps{
		Orchestrator: orch,
		Locations:    services.NewLocationResolver(nil, nil, catalog.Default()),
		QRCodes:      services.NewQRCodeService(&stubQRRepo{codes: map[string]domain.QRCode{}}, "", ""),
		Notifier:     stubNotifier{},
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, journeys
}

func call(t *testing.T, srv *httptest.Server, method, path string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func trackNo(s string) *domain.BookingConfirmation {
	id := domain.ResponseID(s)
	return &domain.BookingConfirmation{TrackNo: &id}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, trackNo("T1"))

	resp := call(t, srv, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestJourneyFlowOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, trackNo("TRK9"))

	var lookup services.LookupResult
	resp := call(t, srv, http.MethodGet, "/journeys?bag=BAGHTTP1", nil, &lookup)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, services.LookupConfigure, lookup.Mode)

	var sess map[string]any
	resp = call(t, srv, http.MethodPost, "/sessions", map[string]string{"bag_id": "BAGHTTP1"}, &sess)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := sess["id"].(string)
	assert.Equal(t, "idle", sess["state"])
	assert.Equal(t, false, sess["completed"])

	resp = call(t, srv, http.MethodPut, "/sessions/"+id+"/parcel", map[string]any{
		"parcel_size":     "small",
		"number_of_boxes": 2,
		"from_location":   map[string]any{"name": "Long Street Hub"},
		"to_location":     map[string]any{"name": "Woodstock Point"},
	}, &sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "quotes_ready", sess["state"])
	require.Len(t, sess["quotes"], 1)

	resp = call(t, srv, http.MethodPost, "/sessions/"+id+"/submit", map[string]any{
		"customer":  map[string]string{"name": "Thandi Mokoena", "phone": "0821234567"},
		"recipient": map[string]string{"name": "Sipho Dlamini", "phone": "0831234567"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, srv, http.MethodPost, "/sessions/"+id+"/quote", map[string]string{"quote_id": "q-1"}, &sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var form services.CheckoutForm
	resp = call(t, srv, http.MethodGet, "/sessions/"+id+"/checkout", nil, &form)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "120.00", form.Fields["amount"])

	var out services.Outcome
	resp = call(t, srv, http.MethodPost, "/sessions/"+id+"/submit", map[string]any{
		"customer":  map[string]string{"name": "Thandi Mokoena", "phone": "0821234567", "email": "thandi@example.com"},
		"recipient": map[string]string{"name": "Sipho Dlamini", "phone": "0831234567", "email": "sipho@example.com"},
	}, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "TRK9", out.Journey.TrackingNumber)
	assert.True(t, out.Emails.Success)

	resp = call(t, srv, http.MethodGet, "/sessions/"+id, nil, &sess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "notifications_sent", sess["state"])
	assert.Equal(t, true, sess["completed"])

	resp = call(t, srv, http.MethodGet, "/journeys?bag=BAGHTTP1", nil, &lookup)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, services.LookupView, lookup.Mode)

	resp = call(t, srv, http.MethodPost, "/sessions", map[string]string{"bag_id": "BAGHTTP1"}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestBookingFailureMapsToBadGateway(t *testing.T) {
	code := 500
	srv, journeys := newTestServer(t, &domain.BookingConfirmation{StatusCode: &code})

	var sess map[string]any
	call(t, srv, http.MethodPost, "/sessions", nil, &sess)
	id := sess["id"].(string)

	call(t, srv, http.MethodPut, "/sessions/"+id+"/parcel", map[string]any{
		"parcel_size":   "envelope",
		"from_location": map[string]any{"name": "Sea Point Center"},
		"to_location":   map[string]any{"lat": -33.93, "lng": 18.46, "name": "Home", "address": "1 Test Road, Observatory"},
	}, nil)
	call(t, srv, http.MethodPost, "/sessions/"+id+"/quote", map[string]string{"quote_id": "q-1"}, nil)

	var body map[string]string
	resp := call(t, srv, http.MethodPost, "/sessions/"+id+"/submit", map[string]any{
		"customer":  map[string]string{"name": "Thandi", "phone": "0821234567"},
		"recipient": map[string]string{"name": "Sipho", "phone": "0831234567"},
	}, &body)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body["error"], "Booking failed")
	assert.Empty(t, journeys.journeys)

	call(t, srv, http.MethodGet, "/sessions/"+id, nil, &sess)
	assert.Equal(t, "booking_failed", sess["state"])
}

func TestRequestErrors(t *testing.T) {
	srv, _ := newTestServer(t, trackNo("T1"))

	resp := call(t, srv, http.MethodGet, "/sessions/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, srv, http.MethodGet, "/journeys", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, srv, http.MethodGet, "/points?lat=abc&lng=18.4", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var pts map[string][]domain.Location
	resp = call(t, srv, http.MethodGet, "/points?lat=-33.9249&lng=18.4241&radius_km=2", nil, &pts)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Long Street Hub", pts["points"][0].Name)

	var sess map[string]any
	call(t, srv, http.MethodPost, "/sessions", nil, &sess)
	resp = call(t, srv, http.MethodPut, "/sessions/"+sess["id"].(string)+"/parcel", map[string]any{
		"from_location": map[string]any{"name": "Nowhere"},
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, srv, http.MethodPut, "/sessions/"+sess["id"].(string)+"/parcel", map[string]any{"colour": "red"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQRCodeEndpoints(t *testing.T) {
	srv, _ := newTestServer(t, trackNo("T1"))

	resp := call(t, srv, http.MethodPost, "/qr-codes", map[string]any{"action": "explode"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var qr domain.QRCode
	resp = call(t, srv, http.MethodPost, "/qr-codes", map[string]any{"action": "generate-single", "bag_id": "BAGQ1"}, &qr)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, domain.DefaultPublicBaseURL+"/?bag=BAGQ1", qr.QRURL)

	var batch services.QRBatchResult
	resp = call(t, srv, http.MethodPost, "/qr-codes", map[string]any{"action": "generate-batch", "count": 3}, &batch)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 3, batch.TotalGenerated)

	var st domain.QRStats
	resp = call(t, srv, http.MethodGet, "/qr-codes/stats", nil, &st)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, st.Total)

	resp = call(t, srv, http.MethodGet, "/qr-codes/BAGQ1", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, srv, http.MethodDelete, "/qr-codes/BAGQ1", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, srv, http.MethodGet, "/qr-codes/BAGQ1", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSendEmailsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, trackNo("T1"))

	var res domain.EmailResult
	resp := call(t, srv, http.MethodPost, "/send-emails", domain.BookingEmailData{
		BagID:     "BAG1",
		Customer:  domain.EmailContact{Email: "thandi@example.com"},
		Recipient: domain.EmailContact{},
	}, &res)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, res.CustomerEmailSent)
	assert.False(t, res.RecipientEmailSent)
	assert.Equal(t, domain.EmailsSomeFailed, res.Message)
}

func TestStartSessionWithoutBody(t *testing.T) {
	srv, _ := newTestServer(t, trackNo("T1"))
	h := srv.Config.Handler

	for name, body := range map[string]string{"empty": "", "whitespace": " \n"} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(body))
			req.ContentLength = -1
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			var sess map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sess))
			assert.NotEmpty(t, sess["bag_id"])
		})
	}

	req := httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"bag_id":"BAGCHUNK"}`))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "BAGCHUNK")

	req = httptest.NewRequest(http.MethodPost, "/sessions", strings.NewReader(`{"bag_id":`))
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
