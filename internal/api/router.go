package api

import (
	"net/http"
	"sparcel-journey-service/internal/api/handlers"
	"sparcel-journey-service/internal/ports"
	"sparcel-journey-service/internal/services"
)

type Deps struct {
	Orchestrator *services.JourneyOrchestrator
	Locations    *services.LocationResolver
	QRCodes      *services.QRCodeService
	Notifier     ports.Notifier

	// AllowedOrigin is sent as Access-Control-Allow-Origin; empty means "*".
	AllowedOrigin string
}

// NewRouter mounts the booking API. QR administration is only mounted when a
// QR code service is configured, and /send-emails only with a notifier.
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	journeys := &handlers.JourneyHandler{Orchestrator: d.Orchestrator, Locations: d.Locations}
	locations := &handlers.LocationHandler{Resolver: d.Locations}
	emails := &handlers.EmailHandler{Notifier: d.Notifier}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /journeys", journeys.Lookup)
	mux.HandleFunc("POST /sessions", journeys.Start)
	mux.HandleFunc("GET /sessions/{id}", journeys.Get)
	mux.HandleFunc("PUT /sessions/{id}/parcel", journeys.UpdateParcel)
	mux.HandleFunc("POST /sessions/{id}/quote", journeys.SelectQuote)
	mux.HandleFunc("POST /sessions/{id}/submit", journeys.Submit)
	mux.HandleFunc("GET /sessions/{id}/checkout", journeys.Checkout)

	mux.HandleFunc("GET /locations/search", locations.Search)
	mux.HandleFunc("GET /points", locations.Points)

	if d.Notifier != nil {
		mux.HandleFunc("POST /send-emails", emails.Send)
	}

	if d.QRCodes != nil {
		qr := &handlers.QRCodeHandler{Service: d.QRCodes}
		mux.HandleFunc("POST /qr-codes", qr.Create)
		mux.HandleFunc("GET /qr-codes", qr.List)
		mux.HandleFunc("GET /qr-codes/stats", qr.Stats)
		mux.HandleFunc("GET /qr-codes/{bagID}", qr.Get)
		mux.HandleFunc("DELETE /qr-codes/{bagID}", qr.Delete)
	}

	return requestIDMiddleware(loggingMiddleware(recoverMiddleware(corsMiddleware(d.AllowedOrigin, mux))))
}
