package crosschain

import (
	"context"

	"github.com/google/uuid"
)

// SettlementNetwork is the external burn-and-mint bridge. InitiateTransfer
// dispatches the local leg and returns the network's opaque reference for
// the in-flight transfer; completion on the destination domain is the
// network's responsibility, not ours.
type SettlementNetwork interface {
	InitiateTransfer(ctx context.Context, token string, amount int64, destinationDomain uint32, recipient string) (string, error)
}

// LoopbackNetwork is the development settlement network: it accepts every
// dispatch and fabricates a reference. Production wiring substitutes the
// real bridge client.
type LoopbackNetwork struct{}

// NewLoopbackNetwork creates a settlement network stub
func NewLoopbackNetwork() *LoopbackNetwork {
	return &LoopbackNetwork{}
}

func (n *LoopbackNetwork) InitiateTransfer(ctx context.Context, token string, amount int64, destinationDomain uint32, recipient string) (string, error) {
	return uuid.New().String(), nil
}
