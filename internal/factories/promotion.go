package factories

import (
	"math/rand"
	"strings"

	"github.com/lucsky/cuid"

	"restopos/internal/models"
)

type PromotionFactory struct{}

// CreateDiscount builds a promo-code discount. Roughly half the codes are
// percentage based, and some are gated to an order type or a minimum order.
func (pf *PromotionFactory) CreateDiscount(restaurantIDs []string) *models.Discount {
	d := &models.Discount{
		ID:    cuid.New(),
		Title: fake.Lorem().Word() + " promo",
		Code:  randomPromoCode(),
	}

	if rand.Float64() < 0.5 {
		d.Type = models.AdjustmentPercentage
		d.Percent = float64(rand.Intn(25) + 5)
	} else {
		d.Type = models.AdjustmentFixed
		d.Amount = models.Money(rand.Intn(500)+100) * 100
	}

	if rand.Float64() < 0.3 {
		d.MinOrderAmount = models.Money(rand.Intn(2000)+1000) * 100
	}
	if rand.Float64() < 0.2 {
		d.OrderTypes = []models.OrderType{models.OrderTypeDelivery}
	}
	if rand.Float64() < 0.2 && len(restaurantIDs) > 0 {
		d.RestaurantIDs = []string{restaurantIDs[rand.Intn(len(restaurantIDs))]}
	}

	return d
}

func (pf *PromotionFactory) CreateSurcharge() *models.Surcharge {
	titles := []string{"Service charge", "Night delivery", "Banquet service", "Packaging"}
	s := &models.Surcharge{
		ID:    cuid.New(),
		Title: titles[rand.Intn(len(titles))],
	}

	if rand.Float64() < 0.5 {
		s.Type = models.AdjustmentPercentage
		s.Percent = float64(rand.Intn(10) + 1)
	} else {
		s.Type = models.AdjustmentFixed
		s.Amount = models.Money(rand.Intn(300)+50) * 100
	}
	return s
}

func randomPromoCode() string {
	const letters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	var b strings.Builder
	for i := 0; i < 8; i++ {
		b.WriteByte(letters[rand.Intn(len(letters))])
	}
	return b.String()
}
