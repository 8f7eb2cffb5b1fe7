package conditional

import "context"

// Storage handles conditional payment persistence
type Storage interface {
	// Create inserts the payment and assigns its id
	Create(ctx context.Context, cp *ConditionalPayment) error

	// GetByID returns the payment or (nil, nil) when unknown
	GetByID(ctx context.Context, id int64) (*ConditionalPayment, error)

	// MarkExecuted flips the terminal executed flag
	MarkExecuted(ctx context.Context, id int64) error
}
