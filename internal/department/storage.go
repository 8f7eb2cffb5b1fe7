package department

import "context"

// Storage handles department persistence
type Storage interface {
	// Create inserts the department and assigns its id
	Create(ctx context.Context, d *Department) error

	// GetByID returns the department or (nil, nil) when unknown
	GetByID(ctx context.Context, id int64) (*Department, error)

	// List returns departments with pagination
	List(ctx context.Context, limit, offset int) ([]*Department, int, error)

	// Update persists the mutable fields (spent_this_month,
	// last_reset_time, active)
	Update(ctx context.Context, d *Department) error
}
