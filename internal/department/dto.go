package department

// CreateDepartmentRequest represents the request to create a department
type CreateDepartmentRequest struct {
	Name          string   `json:"name" validate:"required"`
	MonthlyBudget int64    `json:"monthly_budget" validate:"required,gt=0"`
	Managers      []string `json:"managers,omitempty"`
}

// DepartmentResponse represents a department in API responses
type DepartmentResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	MonthlyBudget  int64    `json:"monthly_budget"`
	Managers       []string `json:"managers,omitempty"`
	SpentThisMonth int64    `json:"spent_this_month"`
	Remaining      int64    `json:"remaining"`
	LastResetTime  string   `json:"last_reset_time"`
	Active         bool     `json:"active"`
	CreatedAt      string   `json:"created_at"`
}

// ToResponse converts a Department model to a DepartmentResponse DTO
func (d *Department) ToResponse() *DepartmentResponse {
	return &DepartmentResponse{
		ID:             d.ID,
		Name:           d.Name,
		MonthlyBudget:  d.MonthlyBudget,
		Managers:       d.Managers,
		SpentThisMonth: d.SpentThisMonth,
		Remaining:      d.MonthlyBudget - d.SpentThisMonth,
		LastResetTime:  d.LastResetTime.UTC().Format("2006-01-02T15:04:05Z"),
		Active:         d.Active,
		CreatedAt:      d.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
