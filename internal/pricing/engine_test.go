package pricing

import (
	"testing"

	"restopos/internal/models"
)

func testCatalog() map[string]*models.Product {
	return map[string]*models.Product{
		"latte": {
			ID:        "latte",
			Name:      "Latte",
			BasePrice: 30000, // 300.00
			Additives: []models.Additive{
				{ID: "syrup", Name: "Vanilla syrup", Price: 5000},
				{ID: "shot", Name: "Extra shot", Price: 7000},
			},
		},
		"pizza": {
			ID:        "pizza",
			Name:      "Margherita",
			BasePrice: 50000,
			RestaurantPrices: []models.RestaurantPrice{
				{RestaurantID: "rest-2", Price: 45000},
				{RestaurantID: "rest-3", Price: 52000, IsStopList: true},
			},
		},
	}
}

func TestResolveUnitPrice(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name         string
		productID    string
		restaurantID string
		want         models.Money
	}{
		{"no override falls back to base price", "pizza", "rest-1", 50000},
		{"override price wins", "pizza", "rest-2", 45000},
		{"override on stop-listed entry still resolves", "pizza", "rest-3", 52000},
		{"product without overrides", "latte", "rest-2", 30000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveUnitPrice(catalog[tt.productID], tt.restaurantID)
			if got != tt.want {
				t.Errorf("ResolveUnitPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanAddProduct(t *testing.T) {
	catalog := testCatalog()

	if err := CanAddProduct(catalog["pizza"], "rest-2"); err != nil {
		t.Errorf("CanAddProduct() unexpected error: %v", err)
	}
	if err := CanAddProduct(catalog["pizza"], "rest-3"); err == nil {
		t.Error("CanAddProduct() expected stop-list error, got nil")
	}
}

func TestComputeBasePrice(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name  string
		draft *models.OrderDraft
		want  models.Money
	}{
		{
			name: "line total is qty times unit plus additives",
			draft: &models.OrderDraft{
				RestaurantID: "rest-1",
				Type:         models.OrderTypeDineIn,
				Items: []models.OrderLineItem{
					{ProductID: "latte", Quantity: 2, AdditiveIDs: []string{"syrup"}},
				},
			},
			want: 70000, // 2 * (300.00 + 50.00)
		},
		{
			name: "unknown additive contributes zero",
			draft: &models.OrderDraft{
				RestaurantID: "rest-1",
				Type:         models.OrderTypeTakeaway,
				Items: []models.OrderLineItem{
					{ProductID: "latte", Quantity: 1, AdditiveIDs: []string{"ghost"}},
				},
			},
			want: 30000,
		},
		{
			name: "missing product contributes zero",
			draft: &models.OrderDraft{
				RestaurantID: "rest-1",
				Type:         models.OrderTypeTakeaway,
				Items: []models.OrderLineItem{
					{ProductID: "gone", Quantity: 3},
					{ProductID: "latte", Quantity: 1},
				},
			},
			want: 30000,
		},
		{
			name: "delivery adds zone price",
			draft: &models.OrderDraft{
				RestaurantID: "rest-1",
				Type:         models.OrderTypeDelivery,
				DeliveryZone: &models.DeliveryZone{ID: "z1", Price: 15000},
				Items: []models.OrderLineItem{
					{ProductID: "latte", Quantity: 1},
				},
			},
			want: 45000,
		},
		{
			name: "zone ignored unless order type is delivery",
			draft: &models.OrderDraft{
				RestaurantID: "rest-1",
				Type:         models.OrderTypeDineIn,
				DeliveryZone: &models.DeliveryZone{ID: "z1", Price: 15000},
				Items: []models.OrderLineItem{
					{ProductID: "latte", Quantity: 1},
				},
			},
			want: 30000,
		},
		{
			name: "restaurant override applies per draft restaurant",
			draft: &models.OrderDraft{
				RestaurantID: "rest-2",
				Type:         models.OrderTypeDineIn,
				Items: []models.OrderLineItem{
					{ProductID: "pizza", Quantity: 2},
				},
			},
			want: 90000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := ComputeBasePrice(tt.draft, catalog)
			if got != tt.want {
				t.Errorf("ComputeBasePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name      string
		draft     *models.OrderDraft
		basePrice models.Money
		want      models.Money
	}{
		{
			name:      "no adjustments",
			draft:     &models.OrderDraft{},
			basePrice: 70000,
			want:      70000,
		},
		{
			name: "percentage adjustments never compound",
			draft: &models.OrderDraft{
				Surcharges: []models.Surcharge{
					{Type: models.AdjustmentPercentage, Percent: 10},
					{Type: models.AdjustmentPercentage, Percent: 10},
				},
			},
			basePrice: 100000,
			want:      120000, // each 10% contributes exactly 100.00
		},
		{
			name: "fixed surcharge with percentage discount",
			draft: &models.OrderDraft{
				Surcharges: []models.Surcharge{
					{Type: models.AdjustmentFixed, Amount: 10000},
				},
				Discounts: []models.Discount{
					{Type: models.AdjustmentPercentage, Percent: 10},
				},
			},
			basePrice: 70000,
			want:      73000, // 700 + 100 - 70
		},
		{
			name: "oversized fixed discount is not clamped",
			draft: &models.OrderDraft{
				Discounts: []models.Discount{
					{Type: models.AdjustmentFixed, Amount: 150000},
				},
			},
			basePrice: 100000,
			want:      -50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotal(tt.draft, tt.basePrice)
			if got != tt.want {
				t.Errorf("ComputeTotal() = %v, want %v", got, tt.want)
			}
		})
	}
}

// The worked scenario from the order-entry screen: 2x(300+50) items, a fixed
// 100 surcharge and a 10% discount. Savings go negative because the
// surcharge outweighs the discount; that is expected, not an error.
func TestQuoteDraftScenario(t *testing.T) {
	catalog := testCatalog()
	draft := &models.OrderDraft{
		RestaurantID: "rest-1",
		Type:         models.OrderTypeDineIn,
		Items: []models.OrderLineItem{
			{ProductID: "latte", Quantity: 2, AdditiveIDs: []string{"syrup"}},
		},
		Surcharges: []models.Surcharge{
			{ID: "s1", Title: "Service", Type: models.AdjustmentFixed, Amount: 10000},
		},
		Discounts: []models.Discount{
			{ID: "d1", Title: "Regulars", Type: models.AdjustmentPercentage, Percent: 10},
		},
	}

	q := QuoteDraft(draft, catalog)

	if q.BasePrice != 70000 {
		t.Errorf("BasePrice = %v, want 70000", q.BasePrice)
	}
	if q.Total != 73000 {
		t.Errorf("Total = %v, want 73000", q.Total)
	}
	if q.Savings != -3000 {
		t.Errorf("Savings = %v, want -3000", q.Savings)
	}
	if q.Savings != q.BasePrice-q.Total {
		t.Error("Savings must equal BasePrice - Total exactly")
	}

	// Idempotence: recomputing an unchanged draft yields identical numbers.
	q2 := QuoteDraft(draft, catalog)
	if q2.BasePrice != q.BasePrice || q2.Total != q.Total || q2.Savings != q.Savings {
		t.Errorf("recomputation changed the result: %+v vs %+v", q2, q)
	}
}

func TestAppliedAdjustments(t *testing.T) {
	draft := &models.OrderDraft{
		Surcharges: []models.Surcharge{
			{ID: "s1", Title: "Service", Type: models.AdjustmentFixed, Amount: 10000},
		},
		Discounts: []models.Discount{
			{ID: "d1", Title: "Promo", Type: models.AdjustmentPercentage, Percent: 10},
		},
	}

	applied := AppliedAdjustments(draft, 70000)
	if len(applied) != 2 {
		t.Fatalf("got %d adjustments, want 2", len(applied))
	}
	if applied[0].Amount != 10000 || applied[0].IsDiscount {
		t.Errorf("surcharge record = %+v", applied[0])
	}
	if applied[1].Amount != 7000 || !applied[1].IsDiscount {
		t.Errorf("discount record = %+v", applied[1])
	}
}
