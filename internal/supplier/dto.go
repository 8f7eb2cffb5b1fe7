package supplier

// RegisterSupplierRequest represents the request to register a supplier
type RegisterSupplierRequest struct {
	Address        string `json:"address" validate:"required"`
	Name           string `json:"name" validate:"required"`
	PreferredToken string `json:"preferred_token,omitempty"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	Address        string `json:"address"`
	Name           string `json:"name"`
	PreferredToken string `json:"preferred_token,omitempty"`
	TotalPaid      int64  `json:"total_paid"`
	PaymentCount   int64  `json:"payment_count"`
	Active         bool   `json:"active"`
	CreatedAt      string `json:"created_at"`
}

// ToResponse converts a Supplier model to a SupplierResponse DTO
func (s *Supplier) ToResponse() *SupplierResponse {
	return &SupplierResponse{
		Address:        s.Address,
		Name:           s.Name,
		PreferredToken: s.PreferredToken,
		TotalPaid:      s.TotalPaid,
		PaymentCount:   s.PaymentCount,
		Active:         s.Active,
		CreatedAt:      s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
