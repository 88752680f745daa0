package models

// Session carries the operator's selected network and restaurant. It is
// threaded explicitly through calls instead of living in ambient storage, so
// pricing and handlers stay pure and testable.
type Session struct {
	NetworkID    string `json:"network_id"`
	RestaurantID string `json:"restaurant_id"`
}

func (s Session) Valid() bool {
	return s.NetworkID != "" && s.RestaurantID != ""
}
