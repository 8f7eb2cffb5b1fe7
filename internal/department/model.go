package department

import "time"

// BudgetPeriod is one budget month. The ceiling is evaluated against a
// rolling 30-day window rather than calendar months, so every department
// resets on its own cadence regardless of when it was created.
const BudgetPeriod = 30 * 24 * time.Hour

// Department represents an organizational unit with a monthly spending
// ceiling. SpentThisMonth is a reservation counter: it grows when a
// payment is scheduled, not when it executes.
type Department struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	MonthlyBudget  int64     `json:"monthly_budget"`
	Managers       []string  `json:"managers"`
	SpentThisMonth int64     `json:"spent_this_month"`
	LastResetTime  time.Time `json:"last_reset_time"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

// EffectiveSpent derives the reservation counter at the given instant,
// applying the lazy monthly reset without mutating the record
func (d *Department) EffectiveSpent(now time.Time) int64 {
	if now.Sub(d.LastResetTime) >= BudgetPeriod {
		return 0
	}
	return d.SpentThisMonth
}
