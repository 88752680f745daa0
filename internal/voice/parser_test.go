package voice

import (
	"testing"

	"restopos/internal/models"
)

func testCatalog() map[string]*models.Product {
	return map[string]*models.Product{
		"prod-1": {ID: "prod-1", Name: "Margherita Pizza"},
		"prod-2": {ID: "prod-2", Name: "Caesar Salad"},
		"prod-3": {ID: "prod-3", Name: "Latte"},
	}
}

func TestParseTranscript(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name          string
		transcript    string
		wantItems     []models.OrderLineItem
		wantUnmatched []string
	}{
		{
			name:       "quantity words and commas",
			transcript: "two margherita pizza, one caesar salad and a latte",
			wantItems: []models.OrderLineItem{
				{ProductID: "prod-1", Quantity: 2},
				{ProductID: "prod-2", Quantity: 1},
				{ProductID: "prod-3", Quantity: 1},
			},
		},
		{
			name:       "digit quantities",
			transcript: "3 latte and 2 caesar salad",
			wantItems: []models.OrderLineItem{
				{ProductID: "prod-3", Quantity: 3},
				{ProductID: "prod-2", Quantity: 2},
			},
		},
		{
			name:       "missing quantity defaults to one",
			transcript: "margherita pizza",
			wantItems:  []models.OrderLineItem{{ProductID: "prod-1", Quantity: 1}},
		},
		{
			name:       "partial name still matches",
			transcript: "two pizza",
			wantItems:  []models.OrderLineItem{{ProductID: "prod-1", Quantity: 2}},
		},
		{
			name:          "unknown item reported not dropped silently",
			transcript:    "one latte and a flying carpet",
			wantItems:     []models.OrderLineItem{{ProductID: "prod-3", Quantity: 1}},
			wantUnmatched: []string{"a flying carpet"},
		},
		{
			name:          "nothing matches",
			transcript:    "good afternoon",
			wantUnmatched: []string{"good afternoon"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTranscript(tt.transcript, catalog)

			if len(got.Items) != len(tt.wantItems) {
				t.Fatalf("ParseTranscript() items = %v, want %v", got.Items, tt.wantItems)
			}
			for i, item := range got.Items {
				if item.ProductID != tt.wantItems[i].ProductID || item.Quantity != tt.wantItems[i].Quantity {
					t.Errorf("item %d = %+v, want %+v", i, item, tt.wantItems[i])
				}
			}
			if len(got.Unmatched) != len(tt.wantUnmatched) {
				t.Fatalf("ParseTranscript() unmatched = %v, want %v", got.Unmatched, tt.wantUnmatched)
			}
			for i, u := range got.Unmatched {
				if u != tt.wantUnmatched[i] {
					t.Errorf("unmatched %d = %q, want %q", i, u, tt.wantUnmatched[i])
				}
			}
		})
	}
}

func TestMatchProductTieIsDeterministic(t *testing.T) {
	// both names contain "cheese", so the scores tie; the lower product ID
	// must win on every call regardless of map iteration order
	catalog := map[string]*models.Product{
		"prod-b": {ID: "prod-b", Name: "Cheese Pizza"},
		"prod-a": {ID: "prod-a", Name: "Cheese Burger"},
	}

	for i := 0; i < 50; i++ {
		product := matchProduct("cheese", catalog)
		if product == nil {
			t.Fatal("matchProduct() = nil, want a product")
		}
		if product.ID != "prod-a" {
			t.Fatalf("call %d resolved tie to %q, want prod-a", i, product.ID)
		}
	}
}

func TestExtractQuantity(t *testing.T) {
	tests := []struct {
		fragment string
		wantQty  int
		wantRest string
	}{
		{"two lattes", 2, "lattes"},
		{"10 pizzas", 10, "pizzas"},
		{"a latte", 1, "latte"},
		{"latte", 1, "latte"},
	}

	for _, tt := range tests {
		qty, rest := extractQuantity(tt.fragment)
		if qty != tt.wantQty || rest != tt.wantRest {
			t.Errorf("extractQuantity(%q) = (%d, %q), want (%d, %q)",
				tt.fragment, qty, rest, tt.wantQty, tt.wantRest)
		}
	}
}
