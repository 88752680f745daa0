package server

import (
	"net/http"

	"restopos/internal/models"
)

// Session headers set by the POS terminal; config supplies the fallback for
// single-restaurant installations.
const (
	headerNetworkID    = "X-Network-ID"
	headerRestaurantID = "X-Restaurant-ID"
)

// sessionFromRequest builds the operator's selected context from request
// headers, falling back to the configured defaults.
func (s *Server) sessionFromRequest(r *http.Request) models.Session {
	session := models.Session{
		NetworkID:    r.Header.Get(headerNetworkID),
		RestaurantID: r.Header.Get(headerRestaurantID),
	}
	if session.NetworkID == "" {
		session.NetworkID = s.cfg.DefaultNetwork
	}
	if session.RestaurantID == "" {
		session.RestaurantID = s.cfg.DefaultRestaurant
	}
	return session
}
