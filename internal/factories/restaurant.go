// Package factories generates synthetic catalog data for development and
// demo environments.
package factories

import (
	"math"
	"math/rand"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"

	"restopos/internal/models"
)

var fake = faker.New()

type RestaurantFactory struct{}

// CreateNetwork builds the restaurant network the generated restaurants
// belong to.
func (rf *RestaurantFactory) CreateNetwork() *models.Network {
	return &models.Network{
		ID:   cuid.New(),
		Name: fake.Company().Name(),
	}
}

func (rf *RestaurantFactory) CreateRestaurant(networkID string, cfg models.SeedConfig) *models.Restaurant {
	latRange := cfg.UrbanRadius / 111.0
	lonRange := latRange / math.Cos(cfg.CityLat*math.Pi/180.0)

	latOffset := (rand.Float64()*2 - 1) * latRange
	lonOffset := (rand.Float64()*2 - 1) * lonRange

	return &models.Restaurant{
		ID:        cuid.New(),
		NetworkID: networkID,
		Name:      fake.Company().Name(),
		Phone:     fake.Phone().Number(),
		Town:      fake.Address().City(),
		Address:   fake.Address().StreetAddress(),
		Location: models.Location{
			Lat: cfg.CityLat + latOffset,
			Lon: cfg.CityLon + lonOffset,
		},
		IsActive: true,
	}
}
