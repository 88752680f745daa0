package models

// RestaurantPrice overrides a product's base price at one restaurant.
// IsStopList marks the product as temporarily unavailable there.
type RestaurantPrice struct {
	RestaurantID string `json:"restaurant_id"`
	Price        Money  `json:"price"`
	IsStopList   bool   `json:"is_stop_list"`
}

// Additive is a paid modifier attached to a product (extra cheese, syrup).
type Additive struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

// Product is catalog data only; price resolution against a restaurant
// lives in the pricing package so there is a single source for it.
type Product struct {
	ID               string            `json:"id"`
	NetworkID        string            `json:"network_id"`
	Name             string            `json:"name"`
	Description      string            `json:"description"`
	Category         string            `json:"category"`
	BasePrice        Money             `json:"base_price"`
	RestaurantPrices []RestaurantPrice `json:"restaurant_prices,omitempty"`
	Additives        []Additive        `json:"additives,omitempty"`
}
