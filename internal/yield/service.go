package yield

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fkhayef/treasury/internal/ledger"
)

// Common errors
var (
	ErrPositionNotFound      = errors.New("yield position not found")
	ErrInsufficientPrincipal = errors.New("withdrawal exceeds position principal")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrUnsupportedToken      = errors.New("unsupported token")
	ErrUnsupportedStrategy   = errors.New("unsupported strategy kind")
	ErrStrategyCall          = errors.New("yield strategy call failed")
)

// Service tracks funds moved into and out of external yield strategies.
// The ledger stays authoritative: the vault is debited before an external
// deposit and credited after a confirmed withdrawal or harvest, and a
// failed external dispatch compensates the local side.
type Service struct {
	mu        sync.Mutex
	storage   Storage
	ledgerSvc *ledger.Service
	strategy  Strategy

	now func() time.Time
}

// NewService creates a new yield service
func NewService(storage Storage, ledgerSvc *ledger.Service, strategy Strategy) *Service {
	return &Service{
		storage:   storage,
		ledgerSvc: ledgerSvc,
		strategy:  strategy,
		now:       time.Now,
	}
}

// WithClock overrides the service clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Deposit moves vault funds into an external strategy and grows the
// position principal
func (s *Service) Deposit(ctx context.Context, req *DepositRequest) (*YieldPosition, error) {
	if err := validate(req.Token, req.Amount, req.StrategyKind); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledgerSvc.Debit(ctx, ledger.Vault, req.Token, req.Amount); err != nil {
		return nil, err
	}

	if err := s.strategy.Deposit(ctx, req.Token, req.Amount, req.StrategyKind); err != nil {
		// The funds never left; put the debit back.
		if cErr := s.ledgerSvc.Credit(ctx, ledger.Vault, req.Token, req.Amount); cErr != nil {
			return nil, fmt.Errorf("%w: %v (compensation also failed: %v)", ErrStrategyCall, err, cErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrStrategyCall, err)
	}

	pos, err := s.storage.Get(ctx, req.Token, req.StrategyKind)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		pos = &YieldPosition{Token: req.Token, StrategyKind: req.StrategyKind}
	}
	pos.Principal += req.Amount
	pos.RiskLevel = req.RiskLevel
	pos.UpdatedAt = s.now()

	if err := s.storage.Set(ctx, pos); err != nil {
		return nil, err
	}
	return pos, nil
}

// Withdraw pulls principal back from the strategy into the vault
func (s *Service) Withdraw(ctx context.Context, req *WithdrawRequest) (*YieldPosition, error) {
	if err := validate(req.Token, req.Amount, req.StrategyKind); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := s.storage.Get(ctx, req.Token, req.StrategyKind)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, ErrPositionNotFound
	}
	if req.Amount > pos.Principal {
		return nil, ErrInsufficientPrincipal
	}

	// External first: if the venue refuses, local state is untouched.
	if err := s.strategy.Withdraw(ctx, req.Token, req.Amount, req.StrategyKind); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStrategyCall, err)
	}

	pos.Principal -= req.Amount
	pos.UpdatedAt = s.now()
	if err := s.storage.Set(ctx, pos); err != nil {
		return nil, err
	}

	if err := s.ledgerSvc.Credit(ctx, ledger.Vault, req.Token, req.Amount); err != nil {
		return nil, err
	}
	return pos, nil
}

// Harvest collects proceeds accrued since the last harvest and credits
// them to the vault
func (s *Service) Harvest(ctx context.Context, req *HarvestRequest) (*YieldPosition, int64, error) {
	if !ledger.IsSupportedToken(req.Token) {
		return nil, 0, ErrUnsupportedToken
	}
	if !IsSupportedStrategy(req.StrategyKind) {
		return nil, 0, ErrUnsupportedStrategy
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, err := s.storage.Get(ctx, req.Token, req.StrategyKind)
	if err != nil {
		return nil, 0, err
	}
	if pos == nil {
		return nil, 0, ErrPositionNotFound
	}

	accrued, err := s.strategy.QueryAccrued(ctx, req.Token, req.StrategyKind)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStrategyCall, err)
	}
	if accrued <= 0 {
		return pos, 0, nil
	}

	pos.AccruedYield += accrued
	pos.UpdatedAt = s.now()
	if err := s.storage.Set(ctx, pos); err != nil {
		return nil, 0, err
	}

	if err := s.ledgerSvc.Credit(ctx, ledger.Vault, req.Token, accrued); err != nil {
		return nil, 0, err
	}
	return pos, accrued, nil
}

// List returns all positions
func (s *Service) List(ctx context.Context) ([]*YieldPosition, error) {
	return s.storage.List(ctx)
}

func validate(token string, amount int64, strategyKind string) error {
	if !ledger.IsSupportedToken(token) {
		return ErrUnsupportedToken
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !IsSupportedStrategy(strategyKind) {
		return ErrUnsupportedStrategy
	}
	return nil
}
