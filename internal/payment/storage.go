package payment

import "context"

// Storage handles payment and approval-engine persistence
type Storage interface {
	// CreatePayment inserts the payment and assigns its stable id
	CreatePayment(ctx context.Context, p *Payment) error

	// GetPayment returns the payment with its votes, or (nil, nil) when
	// the id was never assigned
	GetPayment(ctx context.Context, id int64) (*Payment, error)

	// ListPayments returns payments with pagination, newest first
	ListPayments(ctx context.Context, limit, offset int) ([]*Payment, int, error)

	// UpdatePayment persists the mutable fields (active,
	// next_execution_time)
	UpdatePayment(ctx context.Context, p *Payment) error

	// AddApproval records a vote; membership is unique per payment
	AddApproval(ctx context.Context, paymentID int64, approver string) error

	// RemoveApproval withdraws a vote
	RemoveApproval(ctx context.Context, paymentID int64, approver string) error

	// GetConfig returns the approval configuration, or (nil, nil) before
	// the engine has been bootstrapped
	GetConfig(ctx context.Context) (*Config, error)

	// SetConfig replaces the approval configuration
	SetConfig(ctx context.Context, cfg *Config) error
}
