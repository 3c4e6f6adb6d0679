package handlers

import (
	"net/http"
	"sparcel-journey-service/internal/api/dto"
	"sparcel-journey-service/internal/services"
	"strconv"
)

// QRCodeHandler exposes QR code administration.
type QRCodeHandler struct {
	Service *services.QRCodeService
}

func (h *QRCodeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.QRCodeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	switch req.Action {
	case dto.ActionGenerateSingle:
		qr, err := h.Service.Generate(r.Context(), req.BagID, req.BaseURL)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, qr)
	case dto.ActionGenerateBatch:
		res, err := h.Service.GenerateBatch(r.Context(), req.Count, req.BaseURL)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusCreated, res)
	default:
		writeError(w, r, http.StatusBadRequest, `invalid action, use "generate-single" or "generate-batch"`)
	}
}

func (h *QRCodeHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	res, err := h.Service.List(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *QRCodeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

func (h *QRCodeHandler) Get(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Service.Get(r.Context(), r.PathValue("bagID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, qr)
}

func (h *QRCodeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("bagID")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
