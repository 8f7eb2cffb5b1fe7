package conditional

import "time"

// ConditionalPayment is a transfer held until a caller presents a proof
// for its pre-registered condition commitment. It executes exactly once.
type ConditionalPayment struct {
	ID                  int64     `json:"id"`
	Recipient           string    `json:"recipient"`
	Token               string    `json:"token"`
	Amount              int64     `json:"amount"`
	ConditionCommitment string    `json:"condition_commitment"`
	Executed            bool      `json:"executed"`
	CreatedAt           time.Time `json:"created_at"`
}
