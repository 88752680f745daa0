// Package pricing computes an order draft's base price, total and savings.
// It is the single source for price resolution: order entry, order summary
// and the voice assistant all call into it with their own draft snapshot.
//
// Every function here is a pure computation over caller-owned data. Nothing
// is cached and nothing is mutated; callers recompute on every draft change.
package pricing

import (
	"errors"
	"fmt"

	"restopos/internal/models"
)

// ErrStopListed rejects adding a product that is stop-listed at the draft's
// restaurant.
var ErrStopListed = errors.New("product is stop-listed at this restaurant")

// LineQuote is the priced form of one draft line.
type LineQuote struct {
	ProductID     string       `json:"product_id"`
	Quantity      int          `json:"quantity"`
	UnitPrice     models.Money `json:"unit_price"`
	AdditivesUnit models.Money `json:"additives_unit"`
	LineTotal     models.Money `json:"line_total"`
}

// Quote is the full pricing result for a draft.
type Quote struct {
	BasePrice    models.Money `json:"base_price"`
	DeliveryCost models.Money `json:"delivery_cost"`
	Total        models.Money `json:"total"`
	Savings      models.Money `json:"savings"`
	Lines        []LineQuote  `json:"lines"`
}

// ResolveUnitPrice returns the restaurant-specific override price when one
// exists, otherwise the product's base price. Absence of an override is
// normal and falls back silently.
func ResolveUnitPrice(p *models.Product, restaurantID string) models.Money {
	for _, rp := range p.RestaurantPrices {
		if rp.RestaurantID == restaurantID {
			return rp.Price
		}
	}
	return p.BasePrice
}

// StopListed reports whether the product is stop-listed at the restaurant.
func StopListed(p *models.Product, restaurantID string) bool {
	for _, rp := range p.RestaurantPrices {
		if rp.RestaurantID == restaurantID {
			return rp.IsStopList
		}
	}
	return false
}

// CanAddProduct gates adding a product to a draft.
func CanAddProduct(p *models.Product, restaurantID string) error {
	if StopListed(p, restaurantID) {
		return fmt.Errorf("%q: %w", p.Name, ErrStopListed)
	}
	return nil
}

// additivePrice resolves a selected additive by id. An id that is not on the
// product contributes zero: the inconsistency is tolerated so the
// computation stays total and non-blocking.
func additivePrice(p *models.Product, additiveID string) models.Money {
	for _, a := range p.Additives {
		if a.ID == additiveID {
			return a.Price
		}
	}
	return 0
}

// ComputeBasePrice sums line totals and, for delivery orders with a zone
// attached, the zone's delivery fee. A line whose product is missing from
// the catalog contributes zero, same as an unknown additive.
func ComputeBasePrice(draft *models.OrderDraft, catalog map[string]*models.Product) (models.Money, []LineQuote) {
	lines := make([]LineQuote, 0, len(draft.Items))
	var itemsTotal models.Money

	for _, item := range draft.Items {
		product, ok := catalog[item.ProductID]
		if !ok {
			lines = append(lines, LineQuote{ProductID: item.ProductID, Quantity: item.Quantity})
			continue
		}

		unit := ResolveUnitPrice(product, draft.RestaurantID)
		var additives models.Money
		for _, id := range item.AdditiveIDs {
			additives += additivePrice(product, id)
		}

		lineTotal := models.Money(int64(item.Quantity)) * (unit + additives)
		itemsTotal += lineTotal

		lines = append(lines, LineQuote{
			ProductID:     item.ProductID,
			Quantity:      item.Quantity,
			UnitPrice:     unit,
			AdditivesUnit: additives,
			LineTotal:     lineTotal,
		})
	}

	return itemsTotal + deliveryCost(draft), lines
}

func deliveryCost(draft *models.OrderDraft) models.Money {
	if draft.Type == models.OrderTypeDelivery && draft.DeliveryZone != nil {
		return draft.DeliveryZone.Price
	}
	return 0
}

// ComputeTotal applies surcharges and discounts to the base price.
// Percentage adjustments are always taken against the base price, never
// against a running total: two 10% surcharges on 1000 contribute 100 each.
// The result is deliberately not clamped at zero; whether a negative total
// may be submitted is the order handler's decision, not the engine's.
func ComputeTotal(draft *models.OrderDraft, basePrice models.Money) models.Money {
	total := basePrice

	for _, s := range draft.Surcharges {
		switch s.Type {
		case models.AdjustmentFixed:
			total += s.Amount
		case models.AdjustmentPercentage:
			total += basePrice.Percent(s.Percent)
		}
	}

	for _, d := range draft.Discounts {
		switch d.Type {
		case models.AdjustmentFixed:
			total -= d.Amount
		case models.AdjustmentPercentage:
			total -= basePrice.Percent(d.Percent)
		}
	}

	return total
}

// ComputeSavings is informational, for the "you saved X" display. Negative
// savings are possible when surcharges outweigh discounts.
func ComputeSavings(basePrice, total models.Money) models.Money {
	return basePrice - total
}

// QuoteDraft runs the full computation. Calling it twice with an unchanged
// draft yields identical results.
func QuoteDraft(draft *models.OrderDraft, catalog map[string]*models.Product) Quote {
	basePrice, lines := ComputeBasePrice(draft, catalog)
	total := ComputeTotal(draft, basePrice)

	return Quote{
		BasePrice:    basePrice,
		DeliveryCost: deliveryCost(draft),
		Total:        total,
		Savings:      ComputeSavings(basePrice, total),
		Lines:        lines,
	}
}

// AppliedAdjustments materializes the draft's surcharges and discounts with
// the concrete amount each contributed, for persistence on the order.
func AppliedAdjustments(draft *models.OrderDraft, basePrice models.Money) []models.AppliedAdjustment {
	out := make([]models.AppliedAdjustment, 0, len(draft.Surcharges)+len(draft.Discounts))

	for _, s := range draft.Surcharges {
		var amount models.Money
		switch s.Type {
		case models.AdjustmentFixed:
			amount = s.Amount
		case models.AdjustmentPercentage:
			amount = basePrice.Percent(s.Percent)
		}
		out = append(out, models.AppliedAdjustment{ID: s.ID, Title: s.Title, Amount: amount})
	}

	for _, d := range draft.Discounts {
		var amount models.Money
		switch d.Type {
		case models.AdjustmentFixed:
			amount = d.Amount
		case models.AdjustmentPercentage:
			amount = basePrice.Percent(d.Percent)
		}
		out = append(out, models.AppliedAdjustment{ID: d.ID, Title: d.Title, Amount: amount, IsDiscount: true})
	}

	return out
}
