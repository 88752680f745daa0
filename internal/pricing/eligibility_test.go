package pricing

import (
	"errors"
	"testing"

	"restopos/internal/models"
)

func TestCheckMinOrder(t *testing.T) {
	gated := &models.Discount{Title: "Big order", MinOrderAmount: 50000}

	tests := []struct {
		name      string
		discount  *models.Discount
		basePrice models.Money
		wantErr   bool
	}{
		{"one kopeck below the minimum is rejected", gated, 49999, true},
		{"boundary is inclusive", gated, 50000, false},
		{"above the minimum", gated, 50001, false},
		{"ungated discount always passes", &models.Discount{Title: "Open"}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMinOrder(tt.discount, tt.basePrice)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckMinOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMinOrderErrorNamesShortfall(t *testing.T) {
	err := CheckMinOrder(&models.Discount{Title: "Big order", MinOrderAmount: 50000}, 49999)
	var moe *MinOrderError
	if !errors.As(err, &moe) {
		t.Fatalf("expected *MinOrderError, got %T", err)
	}
	if moe.MinOrder-moe.BasePrice != 1 {
		t.Errorf("shortfall = %v, want 1", moe.MinOrder-moe.BasePrice)
	}
}

func TestValidatePromo(t *testing.T) {
	draft := &models.OrderDraft{
		RestaurantID: "rest-1",
		Type:         models.OrderTypeDelivery,
	}

	tests := []struct {
		name     string
		discount *models.Discount
		wantErr  error
	}{
		{
			name:     "unscoped discount passes",
			discount: &models.Discount{Code: "ALL"},
		},
		{
			name: "order type excluded",
			discount: &models.Discount{
				Code:       "DINEIN5",
				OrderTypes: []models.OrderType{models.OrderTypeDineIn},
			},
			wantErr: ErrPromoOrderType,
		},
		{
			name: "order type included",
			discount: &models.Discount{
				Code:       "DLVR5",
				OrderTypes: []models.OrderType{models.OrderTypeDineIn, models.OrderTypeDelivery},
			},
		},
		{
			name: "restaurant scope excluded",
			discount: &models.Discount{
				Code:          "LOCAL",
				RestaurantIDs: []string{"rest-2"},
			},
			wantErr: ErrPromoRestaurant,
		},
		{
			name: "restaurant scope included",
			discount: &models.Discount{
				Code:          "LOCAL",
				RestaurantIDs: []string{"rest-1", "rest-2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePromo(tt.discount, draft, 100000)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePromo() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGateDiscountsAtSubmission(t *testing.T) {
	draft := &models.OrderDraft{
		Discounts: []models.Discount{
			{Title: "Open"},
			{Title: "Big order", MinOrderAmount: 50000},
		},
	}

	if err := GateDiscounts(draft, 50000); err != nil {
		t.Errorf("GateDiscounts() unexpected error: %v", err)
	}
	if err := GateDiscounts(draft, 49999); err == nil {
		t.Error("GateDiscounts() expected min-order error, got nil")
	}
}
