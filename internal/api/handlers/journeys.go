package handlers

import (
	"fmt"
	"net/http"
	"sparcel-journey-service/internal/api/dto"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/services"
	"strings"
)

// JourneyHandler exposes the QR lookup and the configuration flow.
type JourneyHandler struct {
	Orchestrator *services.JourneyOrchestrator
	Locations    *services.LocationResolver
}

func (h *JourneyHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	res, err := h.Orchestrator.Lookup(r.Context(), r.URL.Query().Get("bag"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *JourneyHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartSessionRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	s, err := h.Orchestrator.StartSession(r.Context(), req.BagID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, dto.NewSessionResponse(s))
}

func (h *JourneyHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Orchestrator.Session(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewSessionResponse(s))
}

func (h *JourneyHandler) UpdateParcel(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateParcelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	upd := services.ParcelUpdate{
		Size:   req.ParcelSize,
		Boxes:  req.NumberOfBoxes,
		Reload: req.Reload,
	}
	var err error
	if upd.From, err = h.location(req.FromLocation); err != nil {
		writeServiceError(w, r, fmt.Errorf("from_location: %w", err))
		return
	}
	if upd.To, err = h.location(req.ToLocation); err != nil {
		writeServiceError(w, r, fmt.Errorf("to_location: %w", err))
		return
	}

	s, err := h.Orchestrator.UpdateParcel(r.Context(), r.PathValue("id"), upd)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewSessionResponse(s))
}

// location resolves a name-only input against the partner catalog.
func (h *JourneyHandler) location(in *dto.LocationInput) (*domain.Location, error) {
	if in == nil {
		return nil, nil
	}
	if in.HasCoordinates() {
		return &domain.Location{Lat: in.Lat, Lng: in.Lng, Name: in.Name, Address: in.Address}, nil
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("name or coordinates required: %w", domain.ErrInvalidInput)
	}
	p, ok := h.Locations.Point(in.Name)
	if !ok {
		return nil, fmt.Errorf("unknown point %q: %w", in.Name, domain.ErrInvalidInput)
	}
	return &p, nil
}

func (h *JourneyHandler) SelectQuote(w http.ResponseWriter, r *http.Request) {
	var req dto.SelectQuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	s, err := h.Orchestrator.SelectQuote(r.Context(), r.PathValue("id"), req.QuoteID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewSessionResponse(s))
}

func (h *JourneyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.Orchestrator.Submit(r.Context(), r.PathValue("id"), services.SubmitRequest{
		Customer:            req.Customer.Contact(),
		Recipient:           req.Recipient.Contact(),
		SpecialInstructions: req.SpecialInstructions,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, out)
}

func (h *JourneyHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	form, err := h.Orchestrator.Checkout(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, form)
}
