package supplier

import "context"

// Storage handles supplier persistence
type Storage interface {
	// Create inserts a new supplier record
	Create(ctx context.Context, s *Supplier) error

	// GetByAddress returns the supplier or (nil, nil) when unknown
	GetByAddress(ctx context.Context, address string) (*Supplier, error)

	// List returns suppliers with pagination, newest first
	List(ctx context.Context, limit, offset int) ([]*Supplier, int, error)

	// RecordPayment accumulates total_paid and payment_count for the
	// recipient, creating a bare record if the recipient was never
	// registered as a supplier.
	RecordPayment(ctx context.Context, address string, amount int64) error
}
