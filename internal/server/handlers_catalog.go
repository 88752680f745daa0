package server

import (
	"net/http"
	"sort"

	"restopos/internal/models"
)

// GetRestaurants handles GET /restaurants: the network's restaurants for
// the terminal's restaurant picker.
func (s *Server) GetRestaurants(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	restaurants, err := s.repos.Restaurants.GetAll(r.Context())
	if err != nil {
		s.log.Error("failed to list restaurants", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	out := make([]*models.Restaurant, 0, len(restaurants))
	for _, restaurant := range restaurants {
		if restaurant.IsActive {
			out = append(out, restaurant)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	writeJSON(w, http.StatusOK, out)
}

type promotionsResponse struct {
	Surcharges []*models.Surcharge `json:"surcharges"`
	Discounts  []*models.Discount  `json:"discounts"`
}

// GetPromotions handles GET /promotions: every configured surcharge and
// discount, for the order-entry adjustment picker.
func (s *Server) GetPromotions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	surcharges, err := s.repos.Surcharges.GetAll(r.Context())
	if err != nil {
		s.log.Error("failed to list surcharges", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	discounts, err := s.repos.Discounts.GetAll(r.Context())
	if err != nil {
		s.log.Error("failed to list discounts", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, promotionsResponse{Surcharges: surcharges, Discounts: discounts})
}
