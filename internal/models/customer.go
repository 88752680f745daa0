package models

import "time"

// Customer is a loyalty-program member looked up by phone at order entry.
type Customer struct {
	ID           string    `json:"id"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	BonusBalance Money     `json:"bonus_balance"`
	OrderCount   int       `json:"order_count"`
	CreatedAt    time.Time `json:"created_at"`
}
