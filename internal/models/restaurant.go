package models

// Network groups restaurants that share a menu and promotions.
type Network struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Restaurant struct {
	ID        string   `json:"id"`
	NetworkID string   `json:"network_id"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Town      string   `json:"town"`
	Address   string   `json:"address"`
	Location  Location `json:"location"`
	IsActive  bool     `json:"is_active"`
}
