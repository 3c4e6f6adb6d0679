package handlers

import (
	"net/http"
	"sparcel-journey-service/internal/services"
	"strconv"
)

type LocationHandler struct {
	Resolver *services.LocationResolver
}

func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	res, err := h.Resolver.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Points lists partner points near lat/lng. radius_km is optional.
func (h *LocationHandler) Points(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		writeError(w, r, http.StatusBadRequest, "lat must be a number between -90 and 90")
		return
	}
	lng, err := strconv.ParseFloat(q.Get("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		writeError(w, r, http.StatusBadRequest, "lng must be a number between -180 and 180")
		return
	}

	radius := services.DefaultNearbyRadiusKm
	if v := q.Get("radius_km"); v != "" {
		radius, err = strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 || radius > 500 {
			writeError(w, r, http.StatusBadRequest, "radius_km must be between 0 and 500")
			return
		}
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"points": h.Resolver.Nearby(lat, lng, radius)})
}
