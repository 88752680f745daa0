package pricing

import (
	"errors"
	"fmt"

	"restopos/internal/models"
)

var (
	// ErrPromoOrderType rejects a discount whose order types exclude the
	// draft's current type.
	ErrPromoOrderType = errors.New("promo code is not valid for this order type")

	// ErrPromoRestaurant rejects a restaurant-scoped discount applied at a
	// restaurant outside its scope.
	ErrPromoRestaurant = errors.New("promo code is not valid at this restaurant")
)

// MinOrderError reports a discount gated by a minimum order amount the draft
// has not reached. The message names the shortfall for the operator.
type MinOrderError struct {
	Title     string
	MinOrder  models.Money
	BasePrice models.Money
}

func (e *MinOrderError) Error() string {
	return fmt.Sprintf("discount %q requires a minimum order of %s, current order is %s (%s short)",
		e.Title, e.MinOrder, e.BasePrice, e.MinOrder-e.BasePrice)
}

// CheckMinOrder enforces a discount's minimum order amount against the base
// price. The boundary is inclusive: a 500.00 order passes a 500.00 minimum.
func CheckMinOrder(d *models.Discount, basePrice models.Money) error {
	if d.MinOrderAmount > 0 && basePrice < d.MinOrderAmount {
		return &MinOrderError{Title: d.Title, MinOrder: d.MinOrderAmount, BasePrice: basePrice}
	}
	return nil
}

// ValidatePromo decides whether a discount fetched by promo code may be
// appended to the draft. It checks order type, restaurant scope and the
// minimum order amount; only a discount passing all three is applicable.
func ValidatePromo(d *models.Discount, draft *models.OrderDraft, basePrice models.Money) error {
	if !d.AllowsOrderType(draft.Type) {
		return ErrPromoOrderType
	}
	if !d.AllowsRestaurant(draft.RestaurantID) {
		return ErrPromoRestaurant
	}
	return CheckMinOrder(d, basePrice)
}

// GateDiscounts re-runs the minimum-order gate over every applied discount.
// It runs again at submission so a discount applied to a draft that later
// shrank below the threshold still blocks the order.
func GateDiscounts(draft *models.OrderDraft, basePrice models.Money) error {
	for i := range draft.Discounts {
		if err := CheckMinOrder(&draft.Discounts[i], basePrice); err != nil {
			return err
		}
	}
	return nil
}
