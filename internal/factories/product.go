package factories

import (
	"math/rand"

	"github.com/lucsky/cuid"

	"restopos/internal/models"
)

type ProductFactory struct{}

// CreateProduct builds a product priced at network level, with a small
// chance of a per-restaurant override or stop-list entry for each of the
// given restaurants.
func (pf *ProductFactory) CreateProduct(networkID string, restaurantIDs []string) *models.Product {
	category := randomCategory()
	basePrice := randomPrice(category)

	p := &models.Product{
		ID:          cuid.New(),
		NetworkID:   networkID,
		Name:        randomDishName(category),
		Description: fake.Lorem().Sentence(8),
		Category:    category,
		BasePrice:   basePrice,
		Additives:   randomAdditives(category),
	}

	for _, rid := range restaurantIDs {
		switch {
		case rand.Float64() < 0.1:
			// local price override, within 20% of the network price
			delta := basePrice.Percent((rand.Float64()*2 - 1) * 20)
			p.RestaurantPrices = append(p.RestaurantPrices, models.RestaurantPrice{
				RestaurantID: rid,
				Price:        basePrice + delta,
			})
		case rand.Float64() < 0.05:
			p.RestaurantPrices = append(p.RestaurantPrices, models.RestaurantPrice{
				RestaurantID: rid,
				Price:        basePrice,
				IsStopList:   true,
			})
		}
	}

	return p
}

func randomCategory() string {
	categories := []string{"Pizza", "Burgers", "Salads", "Drinks", "Desserts", "Soups", "Grill"}
	return categories[rand.Intn(len(categories))]
}

func randomDishName(category string) string {
	dishes := map[string][]string{
		"Pizza":    {"Margherita", "Pepperoni", "Four Cheese", "Veggie Supreme"},
		"Burgers":  {"Classic Cheeseburger", "BBQ Bacon Burger", "Veggie Burger", "Double Smash"},
		"Salads":   {"Caesar Salad", "Greek Salad", "Cobb Salad", "Quinoa Salad"},
		"Drinks":   {"Latte", "Cappuccino", "Fresh Lemonade", "Iced Tea"},
		"Desserts": {"Tiramisu", "Cheesecake", "Apple Pie", "Chocolate Fondant"},
		"Soups":    {"Tom Yum", "Mushroom Cream Soup", "Borscht", "Chicken Noodle"},
		"Grill":    {"Grilled Chicken", "BBQ Ribs", "Grilled Salmon", "Mixed Grill Platter"},
	}
	if names, ok := dishes[category]; ok {
		return names[rand.Intn(len(names))]
	}
	return "Special of the Day"
}

func randomPrice(category string) models.Money {
	switch category {
	case "Drinks":
		return models.Money(rand.Intn(300)+150) * 100 // 150.00 to 449.00
	case "Desserts":
		return models.Money(rand.Intn(400)+250) * 100
	default:
		return models.Money(rand.Intn(900)+350) * 100
	}
}

func randomAdditives(category string) []models.Additive {
	options := map[string][]string{
		"Pizza":   {"Extra Cheese", "Jalapenos", "Mushrooms", "Bacon"},
		"Burgers": {"Extra Patty", "Cheddar Slice", "Fried Egg", "Caramelized Onion"},
		"Drinks":  {"Vanilla Syrup", "Caramel Syrup", "Extra Shot", "Oat Milk"},
	}
	names, ok := options[category]
	if !ok {
		return nil
	}

	count := rand.Intn(len(names) + 1)
	additives := make([]models.Additive, 0, count)
	for _, name := range names[:count] {
		additives = append(additives, models.Additive{
			ID:    cuid.New(),
			Name:  name,
			Price: models.Money(rand.Intn(150)+50) * 100,
		})
	}
	return additives
}
