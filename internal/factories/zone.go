package factories

import (
	"fmt"
	"math/rand"

	"github.com/lucsky/cuid"

	"restopos/internal/models"
)

type ZoneFactory struct{}

// CreateZones builds concentric delivery zones around the restaurant.
// Farther rings cost more and demand a larger minimum order.
func (zf *ZoneFactory) CreateZones(r *models.Restaurant, count int) []*models.DeliveryZone {
	zones := make([]*models.DeliveryZone, 0, count)
	for i := 0; i < count; i++ {
		ring := i + 1
		zones = append(zones, &models.DeliveryZone{
			ID:           cuid.New(),
			RestaurantID: r.ID,
			Title:        fmt.Sprintf("Zone %d", ring),
			Price:        models.Money(ring*100+rand.Intn(100)) * 100,
			MinOrder:     models.Money(ring*500) * 100,
			Center:       r.Location,
			RadiusKm:     float64(ring) * 2.5,
		})
	}
	return zones
}
