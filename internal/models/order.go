package models

import "time"

type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypeTakeaway OrderType = "TAKEAWAY"
	OrderTypeDelivery OrderType = "DELIVERY"
	OrderTypeBanquet  OrderType = "BANQUET"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeaway, OrderTypeDelivery, OrderTypeBanquet:
		return true
	}
	return false
}

// OrderLineItem is one product selection in a draft, with optional paid
// modifiers chosen by additive id.
type OrderLineItem struct {
	ProductID   string   `json:"product_id"`
	Quantity    int      `json:"quantity"`
	AdditiveIDs []string `json:"additive_ids,omitempty"`
}

// OrderDraft is the in-memory order being assembled by the operator. It is
// never persisted as-is; submission converts it to an Order.
type OrderDraft struct {
	RestaurantID string         `json:"restaurant_id"`
	Type         OrderType      `json:"type"`
	Items        []OrderLineItem `json:"items"`
	DeliveryZone *DeliveryZone  `json:"delivery_zone,omitempty"`
	Address      string         `json:"address,omitempty"`
	TableNumber  int            `json:"table_number,omitempty"`
	CustomerPhone string        `json:"customer_phone,omitempty"`
	Comment      string         `json:"comment,omitempty"`
	Surcharges   []Surcharge    `json:"surcharges,omitempty"`
	Discounts    []Discount     `json:"discounts,omitempty"`
}

// AppliedAdjustment is the persisted record of a surcharge or discount as it
// was applied, with the concrete amount it contributed.
type AppliedAdjustment struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Amount      Money  `json:"amount"`
	IsDiscount  bool   `json:"is_discount"`
}

type OrderItem struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	UnitPrice   Money    `json:"unit_price"`
	AdditiveIDs []string `json:"additive_ids,omitempty"`
	LineTotal   Money    `json:"line_total"`
}

// Order is the persisted result of submitting a draft.
type Order struct {
	ID            string              `json:"id"`
	Number        string              `json:"number"`
	RestaurantID  string              `json:"restaurant_id"`
	Type          OrderType           `json:"type"`
	Status        string              `json:"status"`
	Items         []OrderItem         `json:"items"`
	Adjustments   []AppliedAdjustment `json:"adjustments,omitempty"`
	DeliveryZoneID string             `json:"delivery_zone_id,omitempty"`
	Address       string              `json:"address,omitempty"`
	TableNumber   int                 `json:"table_number,omitempty"`
	CustomerPhone string              `json:"customer_phone,omitempty"`
	Comment       string              `json:"comment,omitempty"`
	BasePrice     Money               `json:"base_price"`
	Total         Money               `json:"total"`
	Savings       Money               `json:"savings"`
	CreatedAt     time.Time           `json:"created_at"`
}
