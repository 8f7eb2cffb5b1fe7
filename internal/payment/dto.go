package payment

// SchedulePaymentRequest represents the request to schedule a payment
type SchedulePaymentRequest struct {
	Recipient       string `json:"recipient" validate:"required"`
	Token           string `json:"token" validate:"required"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	IntervalSeconds int64  `json:"interval_seconds"` // 0 = one-shot
	Description     string `json:"description"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID                int64    `json:"id"`
	Recipient         string   `json:"recipient"`
	Token             string   `json:"token"`
	Amount            int64    `json:"amount"`
	IntervalSeconds   int64    `json:"interval_seconds"`
	NextExecutionTime string   `json:"next_execution_time"`
	Description       string   `json:"description,omitempty"`
	Active            bool     `json:"active"`
	RequiresApproval  bool     `json:"requires_approval"`
	ApprovalDeadline  string   `json:"approval_deadline,omitempty"`
	ApprovedBy        []string `json:"approved_by,omitempty"`
	IsApproved        bool     `json:"is_approved"`
	CreatedAt         string   `json:"created_at"`
}

const timeLayout = "2006-01-02T15:04:05Z"

// ToResponse converts a Payment to a PaymentResponse, deriving the
// approval verdict from the current configuration
func (p *Payment) ToResponse(cfg *Config) *PaymentResponse {
	resp := &PaymentResponse{
		ID:                p.ID,
		Recipient:         p.Recipient,
		Token:             p.Token,
		Amount:            p.Amount,
		IntervalSeconds:   p.IntervalSeconds,
		NextExecutionTime: p.NextExecutionTime.UTC().Format(timeLayout),
		Description:       p.Description,
		Active:            p.Active,
		RequiresApproval:  p.RequiresApproval,
		ApprovedBy:        p.ApprovedBy,
		IsApproved:        p.IsApproved(cfg.RequiredApprovals),
		CreatedAt:         p.CreatedAt.UTC().Format(timeLayout),
	}
	if p.RequiresApproval {
		resp.ApprovalDeadline = p.ApprovalDeadline.UTC().Format(timeLayout)
	}
	return resp
}

// CanExecuteResponse reports execution eligibility at evaluation time
type CanExecuteResponse struct {
	PaymentID  int64 `json:"payment_id"`
	CanExecute bool  `json:"can_execute"`
}

// BatchExecuteRequest represents the request to execute a batch
type BatchExecuteRequest struct {
	PaymentIDs []int64 `json:"payment_ids" validate:"required"`
}

// BatchResult reports what a batch call actually did
type BatchResult struct {
	Requested   int     `json:"requested"`
	Executed    int     `json:"executed"`
	ExecutedIDs []int64 `json:"executed_ids,omitempty"`
	SkippedIDs  []int64 `json:"skipped_ids,omitempty"`
}

// AddApproverRequest represents the request to grant voting rights
type AddApproverRequest struct {
	Address string `json:"address" validate:"required"`
}

// SetRequiredApprovalsRequest represents the request to change the quorum
type SetRequiredApprovalsRequest struct {
	RequiredApprovals int `json:"required_approvals" validate:"required,gte=1"`
}

// SetTimelockRequest represents the request to change the cooling-off window
type SetTimelockRequest struct {
	TimelockSeconds int64 `json:"timelock_seconds" validate:"gte=0"`
}
