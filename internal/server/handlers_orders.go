package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/lucsky/cuid"

	"restopos/internal/models"
	"restopos/internal/pricing"
	"restopos/internal/repositories"
)

// validateDraft checks the structural requirements submission and quoting
// share. Field-level problems come back as 400s naming the field.
func validateDraft(draft *models.OrderDraft) error {
	if draft.RestaurantID == "" {
		return errors.New("restaurant_id is required")
	}
	if !draft.Type.Valid() {
		return fmt.Errorf("invalid order type %q", draft.Type)
	}
	if len(draft.Items) == 0 {
		return errors.New("items must not be empty")
	}
	for i, item := range draft.Items {
		if item.ProductID == "" {
			return fmt.Errorf("items[%d].product_id is required", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("items[%d].quantity must be positive", i)
		}
	}
	return nil
}

// validateSubmission adds the checks that only block final submission, not
// quoting: dine-in needs a table, delivery needs a zone and its minimum.
func validateSubmission(draft *models.OrderDraft, basePrice models.Money) error {
	switch draft.Type {
	case models.OrderTypeDineIn, models.OrderTypeBanquet:
		if draft.TableNumber <= 0 {
			return errors.New("table_number is required for this order type")
		}
	case models.OrderTypeDelivery:
		if draft.DeliveryZone == nil {
			return errors.New("delivery_zone is required for delivery orders")
		}
		if draft.DeliveryZone.MinOrder > 0 && basePrice < draft.DeliveryZone.MinOrder {
			return fmt.Errorf("zone %q requires a minimum order of %s",
				draft.DeliveryZone.Title, draft.DeliveryZone.MinOrder)
		}
	}
	return nil
}

// QuoteOrder handles POST /orders/quote. It prices the draft without
// persisting anything, so the operator sees totals on every change.
func (s *Server) QuoteOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var draft models.OrderDraft
	if err := decodeBody(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if draft.RestaurantID == "" {
		draft.RestaurantID = s.sessionFromRequest(r).RestaurantID
	}
	if err := validateDraft(&draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog, err := s.repos.Products.GetAll(r.Context())
	if err != nil {
		s.log.Error("failed to load catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, pricing.QuoteDraft(&draft, catalog))
}

// CreateOrder handles POST /orders: validate, gate discounts, price,
// persist, publish.
func (s *Server) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var draft models.OrderDraft
	if err := decodeBody(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if draft.RestaurantID == "" {
		draft.RestaurantID = s.sessionFromRequest(r).RestaurantID
	}
	if err := validateDraft(&draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	catalog, err := s.repos.Products.GetAll(r.Context())
	if err != nil {
		s.log.Error("failed to load catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	for _, item := range draft.Items {
		product, ok := catalog[item.ProductID]
		if !ok {
			// tolerated: the line prices at zero rather than failing the order
			s.log.Warn("draft references unknown product", "product_id", item.ProductID)
			continue
		}
		if err := pricing.CanAddProduct(product, draft.RestaurantID); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	quote := pricing.QuoteDraft(&draft, catalog)

	if err := validateSubmission(&draft, quote.BasePrice); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := pricing.GateDiscounts(&draft, quote.BasePrice); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if quote.Total < 0 {
		s.log.Warn("order total is negative", "restaurant_id", draft.RestaurantID, "total", quote.Total)
	}

	order := buildOrder(&draft, quote, catalog)
	if err := s.repos.Orders.Create(r.Context(), order); err != nil {
		s.log.Error("failed to persist order", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	s.creditCustomer(r, order)
	s.publisher.OrderCreated(order)

	writeJSON(w, http.StatusCreated, order)
}

func buildOrder(draft *models.OrderDraft, quote pricing.Quote, catalog map[string]*models.Product) *models.Order {
	items := make([]models.OrderItem, 0, len(quote.Lines))
	for i, line := range quote.Lines {
		var name string
		if p, ok := catalog[line.ProductID]; ok {
			name = p.Name
		}
		items = append(items, models.OrderItem{
			ProductID:   line.ProductID,
			ProductName: name,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			AdditiveIDs: draft.Items[i].AdditiveIDs,
			LineTotal:   line.LineTotal,
		})
	}

	order := &models.Order{
		ID:            cuid.New(),
		RestaurantID:  draft.RestaurantID,
		Type:          draft.Type,
		Status:        models.OrderStatusNew,
		Items:         items,
		Adjustments:   pricing.AppliedAdjustments(draft, quote.BasePrice),
		Address:       draft.Address,
		TableNumber:   draft.TableNumber,
		CustomerPhone: draft.CustomerPhone,
		Comment:       draft.Comment,
		BasePrice:     quote.BasePrice,
		Total:         quote.Total,
		Savings:       quote.Savings,
		CreatedAt:     time.Now().UTC(),
	}
	if draft.DeliveryZone != nil {
		order.DeliveryZoneID = draft.DeliveryZone.ID
	}
	return order
}

// creditCustomer updates loyalty counters for a known customer phone. Any
// failure here is logged and swallowed; the order is already persisted.
func (s *Server) creditCustomer(r *http.Request, order *models.Order) {
	if order.CustomerPhone == "" {
		return
	}

	customer, err := s.repos.Customers.GetByPhone(r.Context(), order.CustomerPhone)
	if errors.Is(err, repositories.ErrNotFound) {
		customer = &models.Customer{
			ID:        cuid.New(),
			Phone:     order.CustomerPhone,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.repos.Customers.Create(r.Context(), customer); err != nil {
			s.log.Warn("customer create failed", "error", err, "phone", order.CustomerPhone)
			return
		}
	} else if err != nil {
		s.log.Warn("customer lookup failed", "error", err, "phone", order.CustomerPhone)
		return
	}

	if err := s.repos.Customers.IncrementOrders(r.Context(), customer.ID); err != nil {
		s.log.Warn("customer order count update failed", "error", err, "customer_id", customer.ID)
	}
	if bonus := order.Total.Percent(1); bonus > 0 {
		if err := s.repos.Customers.AddBonus(r.Context(), customer.ID, bonus); err != nil {
			s.log.Warn("customer bonus update failed", "error", err, "customer_id", customer.ID)
		}
	}
}

type promoRequest struct {
	Code  string            `json:"code"`
	Draft models.OrderDraft `json:"draft"`
}

// ResolvePromo handles POST /orders/promo. The promo code resolves to a
// discount only when it passes order type, restaurant scope and min-order
// checks against the current draft; each rejection names its reason.
func (s *Server) ResolvePromo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req promoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}
	if req.Draft.RestaurantID == "" {
		req.Draft.RestaurantID = s.sessionFromRequest(r).RestaurantID
	}
	if err := validateDraft(&req.Draft); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	discount, err := s.repos.Discounts.GetByCode(r.Context(), req.Code)
	if errors.Is(err, repositories.ErrNotFound) {
		writeError(w, http.StatusNotFound, "promo code not found")
		return
	}
	if err != nil {
		s.log.Error("promo lookup failed", "error", err, "code", req.Code)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	catalog, err := s.repos.Products.GetAll(r.Context())
	if err != nil {
		s.log.Error("failed to load catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	basePrice, _ := pricing.ComputeBasePrice(&req.Draft, catalog)
	if err := pricing.ValidatePromo(discount, &req.Draft, basePrice); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, discount)
}

type voiceRequest struct {
	RestaurantID string `json:"restaurant_id"`
	Transcript   string `json:"transcript"`
}

// VoiceDraft handles POST /orders/voice: transcript in, draft line items and
// unmatched fragments out.
func (s *Server) VoiceDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req voiceRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Transcript == "" {
		writeError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	catalog, err := s.repos.Products.GetAll(r.Context())
	if err != nil {
		s.log.Error("failed to load catalog", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	restaurantID := req.RestaurantID
	if restaurantID == "" {
		restaurantID = s.sessionFromRequest(r).RestaurantID
	}

	// stop-listed products are excluded from matching so the assistant never
	// drafts a line the operator cannot add
	available := make(map[string]*models.Product, len(catalog))
	for id, p := range catalog {
		if !pricing.StopListed(p, restaurantID) {
			available[id] = p
		}
	}

	writeJSON(w, http.StatusOK, s.assistant.ParseOrder(r.Context(), req.Transcript, available))
}
