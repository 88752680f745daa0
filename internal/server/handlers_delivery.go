package server

import (
	"errors"
	"net/http"

	"restopos/internal/geocode"
)

type deliveryRequest struct {
	RestaurantID string `json:"restaurant_id"`
	Address      string `json:"address"`
}

// ResolveDelivery handles POST /delivery/resolve: free-text address in,
// matched delivery zone out. Geocoder trouble is a 502; an address outside
// every zone is a 422 the operator can act on.
func (s *Server) ResolveDelivery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req deliveryRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.RestaurantID == "" {
		writeError(w, http.StatusBadRequest, "restaurant_id is required")
		return
	}
	if req.Address == "" {
		writeError(w, http.StatusBadRequest, "address is required")
		return
	}

	loc, err := s.geocoder.Geocode(r.Context(), req.Address)
	if errors.Is(err, geocode.ErrAddressNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.log.Error("geocoder failed", "error", err, "address", req.Address)
		writeError(w, http.StatusBadGateway, "geocoding service unavailable")
		return
	}

	zones, err := s.repos.Zones.GetByRestaurantID(r.Context(), req.RestaurantID)
	if err != nil {
		s.log.Error("failed to load delivery zones", "error", err, "restaurant_id", req.RestaurantID)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	zone, err := geocode.MatchZone(zones, loc)
	if errors.Is(err, geocode.ErrNoZone) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, zone)
}
