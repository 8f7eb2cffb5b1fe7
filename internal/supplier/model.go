package supplier

import "time"

// Supplier represents a payee with cumulative payment statistics
type Supplier struct {
	Address        string    `json:"address"`
	Name           string    `json:"name"`
	PreferredToken string    `json:"preferred_token"`
	TotalPaid      int64     `json:"total_paid"`
	PaymentCount   int64     `json:"payment_count"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}
