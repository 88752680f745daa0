package server

import (
	"net/http"
	"sort"
	"strings"

	"restopos/internal/models"
	"restopos/internal/pricing"
)

// MenuEntry is a product as one restaurant sees it: the resolved price and
// whether the item is currently stop-listed there.
type MenuEntry struct {
	ProductID   string            `json:"product_id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category"`
	Price       models.Money      `json:"price"`
	StopListed  bool              `json:"stop_listed"`
	Additives   []models.Additive `json:"additives,omitempty"`
}

// GetMenu handles GET /menu: the network-wide catalog at base prices.
func (s *Server) GetMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	catalog, err := s.repos.Products.GetAll(r.Context())
	if err != nil {
		s.log.Error("failed to load catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, buildMenu(catalog, ""))
}

// GetRestaurantMenu handles GET /menu/{restaurant}: resolved per-restaurant
// prices with stop-listed items flagged rather than hidden.
func (s *Server) GetRestaurantMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	restaurantID := strings.TrimPrefix(r.URL.Path, "/menu/")
	if restaurantID == "" || strings.Contains(restaurantID, "/") {
		writeError(w, http.StatusBadRequest, "invalid restaurant id")
		return
	}

	catalog, err := s.repos.Products.GetAll(r.Context())
	if err != nil {
		s.log.Error("failed to load catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, buildMenu(catalog, restaurantID))
}

func buildMenu(catalog map[string]*models.Product, restaurantID string) []MenuEntry {
	entries := make([]MenuEntry, 0, len(catalog))
	for _, p := range catalog {
		entry := MenuEntry{
			ProductID:   p.ID,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.BasePrice,
			Additives:   p.Additives,
		}
		if restaurantID != "" {
			entry.Price = pricing.ResolveUnitPrice(p, restaurantID)
			entry.StopListed = pricing.StopListed(p, restaurantID)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
