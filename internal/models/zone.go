package models

import "math"

type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DistanceKm returns the haversine distance between two points.
func (l Location) DistanceKm(other Location) float64 {
	const earthRadiusKm = 6371.0

	lat1 := l.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180
	dLat := (other.Lat - l.Lat) * math.Pi / 180
	dLon := (other.Lon - l.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DeliveryZone is a geofenced pricing region: a circle around Center with
// its own delivery fee and optional minimum order requirement.
type DeliveryZone struct {
	ID           string   `json:"id"`
	RestaurantID string   `json:"restaurant_id"`
	Title        string   `json:"title"`
	Price        Money    `json:"price"`
	MinOrder     Money    `json:"min_order,omitempty"`
	Center       Location `json:"center"`
	RadiusKm     float64  `json:"radius_km"`
}

// Contains reports whether the point falls inside the zone.
func (z *DeliveryZone) Contains(loc Location) bool {
	return z.Center.DistanceKm(loc) <= z.RadiusKm
}
