package conditional

// ScheduleConditionalRequest represents the request to schedule a
// condition-gated payment
type ScheduleConditionalRequest struct {
	Recipient           string `json:"recipient" validate:"required"`
	Token               string `json:"token" validate:"required"`
	Amount              int64  `json:"amount" validate:"required,gt=0"`
	ConditionCommitment string `json:"condition_commitment" validate:"required"`
	Description         string `json:"description"`
}

// ExecuteConditionalRequest carries the proof for a gated payment
type ExecuteConditionalRequest struct {
	Proof string `json:"proof" validate:"required"`
}

// ConditionalPaymentResponse represents a conditional payment in API
// responses
type ConditionalPaymentResponse struct {
	ID                  int64  `json:"id"`
	Recipient           string `json:"recipient"`
	Token               string `json:"token"`
	Amount              int64  `json:"amount"`
	ConditionCommitment string `json:"condition_commitment"`
	Executed            bool   `json:"executed"`
	CreatedAt           string `json:"created_at"`
}

// ToResponse converts a ConditionalPayment to its response DTO
func (cp *ConditionalPayment) ToResponse() *ConditionalPaymentResponse {
	return &ConditionalPaymentResponse{
		ID:                  cp.ID,
		Recipient:           cp.Recipient,
		Token:               cp.Token,
		Amount:              cp.Amount,
		ConditionCommitment: cp.ConditionCommitment,
		Executed:            cp.Executed,
		CreatedAt:           cp.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}
