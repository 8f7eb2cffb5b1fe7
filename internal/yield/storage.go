package yield

import "context"

// Storage handles yield position persistence
type Storage interface {
	// Get returns the position or (nil, nil) when no funds were ever
	// placed with this token/strategy pair
	Get(ctx context.Context, token, strategyKind string) (*YieldPosition, error)

	// Set upserts the position
	Set(ctx context.Context, pos *YieldPosition) error

	// List returns all positions
	List(ctx context.Context) ([]*YieldPosition, error)
}
