package yield

import (
	"context"
	"sync"
)

// Strategy is the external yield venue. All three calls can fail or hang;
// the tracker treats them as dispatch-only and never lets a failure leave
// a partial local mutation behind.
type Strategy interface {
	Deposit(ctx context.Context, token string, amount int64, strategyKind string) error
	Withdraw(ctx context.Context, token string, amount int64, strategyKind string) error

	// QueryAccrued returns the proceeds generated since the last query
	// and resets the venue's accrual marker.
	QueryAccrued(ctx context.Context, token string, strategyKind string) (int64, error)
}

// SimulatedStrategy is the development venue: it accepts every deposit
// and withdrawal and accrues a fixed basis-point yield on the held
// principal per harvest. Production wiring substitutes a real adapter.
type SimulatedStrategy struct {
	mu        sync.Mutex
	yieldBps  int64
	principal map[string]int64 // token/kind -> amount held
}

// NewSimulatedStrategy creates a simulated venue paying yieldBps basis
// points of principal per harvest
func NewSimulatedStrategy(yieldBps int64) *SimulatedStrategy {
	return &SimulatedStrategy{
		yieldBps:  yieldBps,
		principal: make(map[string]int64),
	}
}

func key(token, kind string) string { return token + "/" + kind }

func (s *SimulatedStrategy) Deposit(ctx context.Context, token string, amount int64, strategyKind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal[key(token, strategyKind)] += amount
	return nil
}

func (s *SimulatedStrategy) Withdraw(ctx context.Context, token string, amount int64, strategyKind string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal[key(token, strategyKind)] -= amount
	return nil
}

func (s *SimulatedStrategy) QueryAccrued(ctx context.Context, token string, strategyKind string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal[key(token, strategyKind)] * s.yieldBps / 10000, nil
}
