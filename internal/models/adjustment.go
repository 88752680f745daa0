package models

// AdjustmentType tags the two ways a surcharge or discount is expressed.
// Every amount calculation must switch on it exhaustively.
type AdjustmentType string

const (
	AdjustmentFixed      AdjustmentType = "FIXED"
	AdjustmentPercentage AdjustmentType = "PERCENTAGE"
)

func (t AdjustmentType) Valid() bool {
	return t == AdjustmentFixed || t == AdjustmentPercentage
}

// Surcharge is an additive fee on top of the base price.
// Amount is used when Type is FIXED, Percent (0-100 scale) when PERCENTAGE.
type Surcharge struct {
	ID      string         `json:"id"`
	Title   string         `json:"title"`
	Type    AdjustmentType `json:"type"`
	Amount  Money          `json:"amount"`
	Percent float64        `json:"percent"`
}

// Discount is a subtractive reduction against the base price. A zero
// MinOrderAmount means the discount is not gated.
type Discount struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Code           string         `json:"code,omitempty"`
	Type           AdjustmentType `json:"type"`
	Amount         Money          `json:"amount"`
	Percent        float64        `json:"percent"`
	MinOrderAmount Money          `json:"min_order_amount,omitempty"`
	OrderTypes     []OrderType    `json:"order_types,omitempty"`
	RestaurantIDs  []string       `json:"restaurant_ids,omitempty"`
}

// AllowsOrderType reports whether the discount may be applied to orders of
// the given type. An empty list means any type.
func (d *Discount) AllowsOrderType(t OrderType) bool {
	if len(d.OrderTypes) == 0 {
		return true
	}
	for _, ot := range d.OrderTypes {
		if ot == t {
			return true
		}
	}
	return false
}

// AllowsRestaurant reports whether the discount may be applied at the given
// restaurant. An empty list means the whole network.
func (d *Discount) AllowsRestaurant(restaurantID string) bool {
	if len(d.RestaurantIDs) == 0 {
		return true
	}
	for _, id := range d.RestaurantIDs {
		if id == restaurantID {
			return true
		}
	}
	return false
}
