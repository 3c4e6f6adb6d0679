package handlers

import (
	"net/http"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/ports"
)

// EmailHandler serves the standalone booking email endpoint.
type EmailHandler struct {
	Notifier ports.Notifier
}

func (h *EmailHandler) Send(w http.ResponseWriter, r *http.Request) {
	var data domain.BookingEmailData
	if !decodeJSON(w, r, &data) {
		return
	}
	if data.BagID == "" {
		writeError(w, r, http.StatusBadRequest, "bag_id is required")
		return
	}

	res, err := h.Notifier.SendBookingEmails(r.Context(), data)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}
