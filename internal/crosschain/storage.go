package crosschain

import "context"

// Storage handles cross-chain payment persistence
type Storage interface {
	// Create records the routing data for a scheduled payment
	Create(ctx context.Context, cc *CrossChainPayment) error

	// GetByPaymentID returns the routing record or (nil, nil) when the
	// payment was not scheduled as cross-chain
	GetByPaymentID(ctx context.Context, paymentID int64) (*CrossChainPayment, error)

	// SetExternalReference stores the network's handle after initiation
	SetExternalReference(ctx context.Context, paymentID int64, reference string) error
}
