package geocode

import (
	"errors"

	"restopos/internal/models"
)

// ErrNoZone means the point is outside every delivery zone of the
// restaurant. Delivery orders may not proceed without a zone.
var ErrNoZone = errors.New("address is not inside any delivery zone")

// MatchZone returns the zone containing the point. When zones overlap the
// one whose center is nearest wins, so the operator gets a stable answer.
func MatchZone(zones []*models.DeliveryZone, loc models.Location) (*models.DeliveryZone, error) {
	var best *models.DeliveryZone
	var bestDist float64

	for _, zone := range zones {
		if !zone.Contains(loc) {
			continue
		}
		dist := zone.Center.DistanceKm(loc)
		if best == nil || dist < bestDist {
			best = zone
			bestDist = dist
		}
	}

	if best == nil {
		return nil, ErrNoZone
	}
	return best, nil
}
