package payment

import "time"

// Payment represents a scheduled, potentially recurring transfer out of
// the treasury vault.
type Payment struct {
	ID              int64  `json:"id"`
	Recipient       string `json:"recipient"`
	Token           string `json:"token"`
	Amount          int64  `json:"amount"` // smallest currency unit
	IntervalSeconds int64  `json:"interval_seconds"`
	// NextExecutionTime is the earliest instant execution is permitted.
	// Recurring payments re-arm by adding IntervalSeconds to it.
	NextExecutionTime time.Time `json:"next_execution_time"`
	Description       string    `json:"description"`
	Active            bool      `json:"active"`

	// RequiresApproval is frozen at schedule time: true iff Amount met
	// the approval threshold in force at that moment. Later threshold
	// changes never reclassify an existing payment.
	RequiresApproval bool `json:"requires_approval"`

	// ApprovalDeadline is the end of the cooling-off window, frozen at
	// schedule time. Zero for payments that never required approval.
	ApprovalDeadline time.Time `json:"approval_deadline,omitempty"`

	// ApprovedBy holds the distinct approvers that have voted.
	ApprovedBy []string `json:"approved_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// HasApproved reports whether the given approver has a standing vote
func (p *Payment) HasApproved(approver string) bool {
	for _, a := range p.ApprovedBy {
		if a == approver {
			return true
		}
	}
	return false
}

// IsApproved evaluates the quorum against the current required count.
// Payments below the threshold are treated as pre-approved.
func (p *Payment) IsApproved(requiredApprovals int) bool {
	if !p.RequiresApproval {
		return true
	}
	return len(p.ApprovedBy) >= requiredApprovals
}

// CanExecute reports execution eligibility at the given instant: the
// payment is active, its scheduled time has arrived, the quorum is met,
// and the cooling-off window has elapsed. The window binds even when all
// votes arrived instantly.
func (p *Payment) CanExecute(now time.Time, requiredApprovals int) bool {
	if !p.Active {
		return false
	}
	if now.Before(p.NextExecutionTime) {
		return false
	}
	if !p.IsApproved(requiredApprovals) {
		return false
	}
	if p.RequiresApproval && now.Before(p.ApprovalDeadline) {
		return false
	}
	return true
}

// OneShot reports whether the payment deactivates after one execution
func (p *Payment) OneShot() bool {
	return p.IntervalSeconds == 0
}
