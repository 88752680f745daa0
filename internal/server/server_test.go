package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"restopos/internal/events"
	"restopos/internal/logger"
	"restopos/internal/models"
	"restopos/internal/pricing"
	"restopos/internal/repositories"
)

type fakeProductRepo struct {
	products map[string]*models.Product
}

func (f *fakeProductRepo) BulkCreate(ctx context.Context, products []*models.Product) error {
	return nil
}
func (f *fakeProductRepo) Create(ctx context.Context, p *models.Product) error { return nil }
func (f *fakeProductRepo) GetAll(ctx context.Context) (map[string]*models.Product, error) {
	return f.products, nil
}
func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return p, nil
}
func (f *fakeProductRepo) Count(ctx context.Context) (int, error) { return len(f.products), nil }
func (f *fakeProductRepo) DeleteAll(ctx context.Context) error    { return nil }

type fakeDiscountRepo struct {
	byCode map[string]*models.Discount
}

func (f *fakeDiscountRepo) BulkCreate(ctx context.Context, discounts []*models.Discount) error {
	return nil
}
func (f *fakeDiscountRepo) Create(ctx context.Context, d *models.Discount) error { return nil }
func (f *fakeDiscountRepo) GetAll(ctx context.Context) ([]*models.Discount, error) {
	return nil, nil
}
func (f *fakeDiscountRepo) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeDiscountRepo) GetByCode(ctx context.Context, code string) (*models.Discount, error) {
	d, ok := f.byCode[code]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return d, nil
}
func (f *fakeDiscountRepo) DeleteAll(ctx context.Context) error { return nil }

type fakeOrderRepo struct {
	created []*models.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	order.Number = fmt.Sprintf("ORD_20260901_%03d", len(f.created)+1)
	f.created = append(f.created, order)
	return nil
}
func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	for _, o := range f.created {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, repositories.ErrNotFound
}
func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for _, o := range f.created {
		if o.ID == id {
			o.Status = status
			return nil
		}
	}
	return repositories.ErrNotFound
}
func (f *fakeOrderRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Order, error) {
	return f.created, nil
}
func (f *fakeOrderRepo) Count(ctx context.Context) (int, error) { return len(f.created), nil }

type fakeCustomerRepo struct{}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *models.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	return nil, repositories.ErrNotFound
}
func (f *fakeCustomerRepo) AddBonus(ctx context.Context, id string, amount models.Money) error {
	return nil
}
func (f *fakeCustomerRepo) IncrementOrders(ctx context.Context, id string) error { return nil }

type fakePaymentRepo struct {
	byID map[string]*models.PaymentIntegration
}

func (f *fakePaymentRepo) Create(ctx context.Context, pi *models.PaymentIntegration) error {
	f.byID[pi.ID] = pi
	return nil
}
func (f *fakePaymentRepo) Update(ctx context.Context, pi *models.PaymentIntegration) error {
	f.byID[pi.ID] = pi
	return nil
}
func (f *fakePaymentRepo) GetAll(ctx context.Context) ([]*models.PaymentIntegration, error) {
	var out []*models.PaymentIntegration
	for _, pi := range f.byID {
		out = append(out, pi)
	}
	return out, nil
}
func (f *fakePaymentRepo) GetByID(ctx context.Context, id string) (*models.PaymentIntegration, error) {
	pi, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return pi, nil
}
func (f *fakePaymentRepo) SetEnabled(ctx context.Context, id string, enabled bool) error {
	if pi, ok := f.byID[id]; ok {
		pi.Enabled = enabled
	}
	return nil
}
func (f *fakePaymentRepo) Delete(ctx context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func testServer(t *testing.T) (*Server, *fakeOrderRepo) {
	t.Helper()

	products := map[string]*models.Product{
		"latte": {
			ID: "latte", Name: "Latte", Category: "Drinks", BasePrice: 30000,
		},
		"pizza": {
			ID: "pizza", Name: "Margherita Pizza", Category: "Pizza", BasePrice: 50000,
			RestaurantPrices: []models.RestaurantPrice{
				{RestaurantID: "rest-2", Price: 45000},
				{RestaurantID: "rest-3", Price: 50000, IsStopList: true},
			},
		},
	}

	discounts := map[string]*models.Discount{
		"TENOFF": {
			ID: "d-1", Title: "ten percent off", Code: "TENOFF",
			Type: models.AdjustmentPercentage, Percent: 10,
		},
		"BIGSPENDER": {
			ID: "d-2", Title: "big spender", Code: "BIGSPENDER",
			Type: models.AdjustmentFixed, Amount: 20000, MinOrderAmount: 100000,
		},
	}

	orders := &fakeOrderRepo{}
	log := logger.New("restopos-test")

	srv := New(
		&models.Config{HTTPAddr: ":0", DefaultRestaurant: "rest-1"},
		log,
		Repositories{
			Products:  &fakeProductRepo{products: products},
			Discounts: &fakeDiscountRepo{byCode: discounts},
			Orders:    orders,
			Customers: &fakeCustomerRepo{},
			Payments:  &fakePaymentRepo{byID: make(map[string]*models.PaymentIntegration)},
		},
		events.NewPublisher(&events.ConsoleSink{}, log),
		nil,
		nil,
		nil,
	)
	return srv, orders
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestQuoteOrder(t *testing.T) {
	srv, _ := testServer(t)
	handler := srv.Routes()

	draft := models.OrderDraft{
		RestaurantID: "rest-1",
		Type:         models.OrderTypeTakeaway,
		Items: []models.OrderLineItem{
			{ProductID: "latte", Quantity: 2},
		},
		Discounts: []models.Discount{
			{ID: "d-1", Title: "ten percent off", Type: models.AdjustmentPercentage, Percent: 10},
		},
	}

	rec := doJSON(t, handler, http.MethodPost, "/orders/quote", draft)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var quote pricing.Quote
	if err := json.Unmarshal(rec.Body.Bytes(), &quote); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if quote.BasePrice != 60000 {
		t.Errorf("BasePrice = %d, want 60000", quote.BasePrice)
	}
	if quote.Total != 54000 {
		t.Errorf("Total = %d, want 54000", quote.Total)
	}
	if quote.Savings != 6000 {
		t.Errorf("Savings = %d, want 6000", quote.Savings)
	}
}

func TestQuoteOrderValidation(t *testing.T) {
	srv, _ := testServer(t)
	handler := srv.Routes()

	tests := []struct {
		name  string
		draft models.OrderDraft
	}{
		{"missing restaurant", models.OrderDraft{Type: models.OrderTypeDineIn, Items: []models.OrderLineItem{{ProductID: "latte", Quantity: 1}}}},
		{"invalid type", models.OrderDraft{RestaurantID: "rest-1", Type: "DRIVE_THROUGH", Items: []models.OrderLineItem{{ProductID: "latte", Quantity: 1}}}},
		{"no items", models.OrderDraft{RestaurantID: "rest-1", Type: models.OrderTypeDineIn}},
		{"zero quantity", models.OrderDraft{RestaurantID: "rest-1", Type: models.OrderTypeDineIn, Items: []models.OrderLineItem{{ProductID: "latte", Quantity: 0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, handler, http.MethodPost, "/orders/quote", tt.draft)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestQuoteOrderUsesSessionRestaurant(t *testing.T) {
	srv, _ := testServer(t)
	handler := srv.Routes()

	draft := models.OrderDraft{
		Type:  models.OrderTypeTakeaway,
		Items: []models.OrderLineItem{{ProductID: "pizza", Quantity: 1}},
	}

	t.Run("config default fills missing restaurant", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/orders/quote", draft)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var quote pricing.Quote
		if err := json.Unmarshal(rec.Body.Bytes(), &quote); err != nil {
			t.Fatalf("decode quote: %v", err)
		}
		if quote.BasePrice != 50000 {
			t.Errorf("BasePrice = %d, want base price 50000 at default restaurant", quote.BasePrice)
		}
	})

	t.Run("session header overrides default", func(t *testing.T) {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(draft); err != nil {
			t.Fatal(err)
		}
		req := httptest.NewRequest(http.MethodPost, "/orders/quote", &buf)
		req.Header.Set("X-Restaurant-ID", "rest-2")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var quote pricing.Quote
		if err := json.Unmarshal(rec.Body.Bytes(), &quote); err != nil {
			t.Fatalf("decode quote: %v", err)
		}
		if quote.BasePrice != 45000 {
			t.Errorf("BasePrice = %d, want override 45000 at rest-2", quote.BasePrice)
		}
	})
}

func TestCreateOrder(t *testing.T) {
	srv, orders := testServer(t)
	handler := srv.Routes()

	draft := models.OrderDraft{
		RestaurantID: "rest-1",
		Type:         models.OrderTypeDineIn,
		TableNumber:  4,
		Items: []models.OrderLineItem{
			{ProductID: "pizza", Quantity: 1},
			{ProductID: "latte", Quantity: 1},
		},
	}

	rec := doJSON(t, handler, http.MethodPost, "/orders", draft)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var order models.Order
	if err := json.Unmarshal(rec.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.Number == "" {
		t.Error("order number not assigned")
	}
	if order.Status != models.OrderStatusNew {
		t.Errorf("status = %q, want %q", order.Status, models.OrderStatusNew)
	}
	if order.Total != 80000 {
		t.Errorf("Total = %d, want 80000", order.Total)
	}
	if len(orders.created) != 1 {
		t.Fatalf("persisted %d orders, want 1", len(orders.created))
	}
}

func TestCreateOrderRejectsStopListed(t *testing.T) {
	srv, orders := testServer(t)
	handler := srv.Routes()

	draft := models.OrderDraft{
		RestaurantID: "rest-3",
		Type:         models.OrderTypeTakeaway,
		Items:        []models.OrderLineItem{{ProductID: "pizza", Quantity: 1}},
	}

	rec := doJSON(t, handler, http.MethodPost, "/orders", draft)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(orders.created) != 0 {
		t.Error("stop-listed order was persisted")
	}
}

func TestCreateOrderGatesDiscountAtSubmission(t *testing.T) {
	srv, orders := testServer(t)
	handler := srv.Routes()

	// one latte (300.00) with a discount that demands a 1000.00 order
	draft := models.OrderDraft{
		RestaurantID: "rest-1",
		Type:         models.OrderTypeTakeaway,
		Items:        []models.OrderLineItem{{ProductID: "latte", Quantity: 1}},
		Discounts: []models.Discount{
			{ID: "d-2", Title: "big spender", Type: models.AdjustmentFixed, Amount: 20000, MinOrderAmount: 100000},
		},
	}

	rec := doJSON(t, handler, http.MethodPost, "/orders", draft)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(orders.created) != 0 {
		t.Error("gated order was persisted")
	}
}

func TestCreateOrderEnforcesZoneMinimum(t *testing.T) {
	srv, orders := testServer(t)
	handler := srv.Routes()

	// one latte (300.00) plus the 150.00 fee stays under the zone's 1000.00
	draft := models.OrderDraft{
		RestaurantID: "rest-1",
		Type:         models.OrderTypeDelivery,
		Address:      "Lenina 1",
		DeliveryZone: &models.DeliveryZone{ID: "z-1", Title: "far ring", Price: 15000, MinOrder: 100000},
		Items:        []models.OrderLineItem{{ProductID: "latte", Quantity: 1}},
	}

	rec := doJSON(t, handler, http.MethodPost, "/orders", draft)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if len(orders.created) != 0 {
		t.Error("below-minimum delivery order was persisted")
	}

	draft.Items[0].Quantity = 4
	rec = doJSON(t, handler, http.MethodPost, "/orders", draft)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(orders.created) != 1 {
		t.Fatalf("persisted %d orders, want 1", len(orders.created))
	}
}

func TestCreateOrderRequiresTableForDineIn(t *testing.T) {
	srv, _ := testServer(t)
	handler := srv.Routes()

	draft := models.OrderDraft{
		RestaurantID: "rest-1",
		Type:         models.OrderTypeDineIn,
		Items:        []models.OrderLineItem{{ProductID: "latte", Quantity: 1}},
	}

	rec := doJSON(t, handler, http.MethodPost, "/orders", draft)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestOrderStatusLifecycle(t *testing.T) {
	srv, orders := testServer(t)
	handler := srv.Routes()

	draft := models.OrderDraft{
		RestaurantID: "rest-1",
		Type:         models.OrderTypeTakeaway,
		Items:        []models.OrderLineItem{{ProductID: "latte", Quantity: 1}},
	}
	rec := doJSON(t, handler, http.MethodPost, "/orders", draft)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d", rec.Code)
	}
	id := orders.created[0].ID

	t.Run("get by id", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/orders/"+id, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/orders/"+id+"/status", statusRequest{Status: "vaporized"})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("complete order", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/orders/"+id+"/status", statusRequest{Status: models.OrderStatusCompleted})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if orders.created[0].Status != models.OrderStatusCompleted {
			t.Errorf("order status = %q, want completed", orders.created[0].Status)
		}
	})

	t.Run("terminal state is final", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/orders/"+id+"/status", statusRequest{Status: models.OrderStatusPreparing})
		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want 409", rec.Code)
		}
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodGet, "/orders/nope", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestResolvePromo(t *testing.T) {
	srv, _ := testServer(t)
	handler := srv.Routes()

	baseDraft := models.OrderDraft{
		RestaurantID: "rest-1",
		Type:         models.OrderTypeTakeaway,
		Items:        []models.OrderLineItem{{ProductID: "latte", Quantity: 1}},
	}

	t.Run("valid code resolves", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/orders/promo", promoRequest{Code: "TENOFF", Draft: baseDraft})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var d models.Discount
		if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
			t.Fatalf("decode discount: %v", err)
		}
		if d.ID != "d-1" {
			t.Errorf("discount id = %q, want d-1", d.ID)
		}
	})

	t.Run("unknown code is 404", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/orders/promo", promoRequest{Code: "NOPE", Draft: baseDraft})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("below minimum is rejected with reason", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/orders/promo", promoRequest{Code: "BIGSPENDER", Draft: baseDraft})
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}
		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if resp.Error == "" {
			t.Error("rejection carries no reason")
		}
	})
}

func TestRestaurantMenu(t *testing.T) {
	srv, _ := testServer(t)
	handler := srv.Routes()

	rec := doJSON(t, handler, http.MethodGet, "/menu/rest-3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var entries []MenuEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode menu: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	byID := make(map[string]MenuEntry)
	for _, e := range entries {
		byID[e.ProductID] = e
	}
	if !byID["pizza"].StopListed {
		t.Error("stop-listed product not flagged")
	}
	if byID["latte"].StopListed {
		t.Error("available product flagged as stop-listed")
	}
}

func TestRestaurantMenuResolvesOverride(t *testing.T) {
	srv, _ := testServer(t)
	handler := srv.Routes()

	rec := doJSON(t, handler, http.MethodGet, "/menu/rest-2", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var entries []MenuEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode menu: %v", err)
	}
	for _, e := range entries {
		if e.ProductID == "pizza" && e.Price != 45000 {
			t.Errorf("pizza price = %d, want override 45000", e.Price)
		}
	}
}

func TestPaymentIntegrationLifecycle(t *testing.T) {
	srv, _ := testServer(t)
	handler := srv.Routes()

	t.Run("missing credential rejected", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/payments/integrations", models.PaymentIntegration{
			Title:       "main",
			Provider:    models.ProviderYooKassa,
			Credentials: map[string]string{"shop_id": "123"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	var created models.PaymentIntegration
	t.Run("create masks credentials", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/payments/integrations", models.PaymentIntegration{
			Title:       "main",
			Provider:    models.ProviderYooKassa,
			Credentials: map[string]string{"shop_id": "123", "secret_key": "s3cret"},
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode integration: %v", err)
		}
		if created.Credentials["secret_key"] != "****" {
			t.Errorf("secret leaked: %q", created.Credentials["secret_key"])
		}
	})

	t.Run("toggle enabled", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodPost, "/payments/integrations/"+created.ID+"/enable", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}

		rec = doJSON(t, handler, http.MethodGet, "/payments/integrations/"+created.ID, nil)
		var got models.PaymentIntegration
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode integration: %v", err)
		}
		if !got.Enabled {
			t.Error("integration not enabled after toggle")
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := doJSON(t, handler, http.MethodDelete, "/payments/integrations/"+created.ID, nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204", rec.Code)
		}
		rec = doJSON(t, handler, http.MethodGet, "/payments/integrations/"+created.ID, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404 after delete", rec.Code)
		}
	})
}
