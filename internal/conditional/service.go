package conditional

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fkhayef/treasury/internal/ledger"
)

// Common errors
var (
	ErrPaymentNotFound   = errors.New("conditional payment not found")
	ErrAlreadyExecuted   = errors.New("conditional payment already executed")
	ErrProofRejected     = errors.New("proof does not satisfy the condition")
	ErrInvalidRecipient  = errors.New("recipient must not be empty")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrUnsupportedToken  = errors.New("unsupported token")
	ErrInvalidCommitment = errors.New("condition commitment must not be empty")
)

// Service is the conditional payment gate. It holds a transfer behind a
// condition commitment and guarantees exactly one execution; what makes a
// proof valid is the injected verifier's business.
type Service struct {
	mu        sync.Mutex
	storage   Storage
	ledgerSvc *ledger.Service
	verifier  Verifier

	now func() time.Time
}

// NewService creates a new conditional payment service
func NewService(storage Storage, ledgerSvc *ledger.Service, verifier Verifier) *Service {
	return &Service{
		storage:   storage,
		ledgerSvc: ledgerSvc,
		verifier:  verifier,
		now:       time.Now,
	}
}

// WithClock overrides the service clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Schedule registers a condition-gated payment
func (s *Service) Schedule(ctx context.Context, req *ScheduleConditionalRequest) (*ConditionalPayment, error) {
	if req.Recipient == "" {
		return nil, ErrInvalidRecipient
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !ledger.IsSupportedToken(req.Token) {
		return nil, ErrUnsupportedToken
	}
	if req.ConditionCommitment == "" {
		return nil, ErrInvalidCommitment
	}

	cp := &ConditionalPayment{
		Recipient:           req.Recipient,
		Token:               req.Token,
		Amount:              req.Amount,
		ConditionCommitment: req.ConditionCommitment,
		CreatedAt:           s.now(),
	}
	if err := s.storage.Create(ctx, cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// Execute releases the payment against a proof. The executed flag flips
// exactly once; the check and the transfer run under the mutex so two
// racing proofs cannot both pay out.
func (s *Service) Execute(ctx context.Context, id int64, proof string) (*ConditionalPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, ErrPaymentNotFound
	}
	if cp.Executed {
		return nil, ErrAlreadyExecuted
	}
	if !s.verifier.Verify(cp.ConditionCommitment, proof) {
		return nil, ErrProofRejected
	}

	if err := s.ledgerSvc.Transfer(ctx, ledger.Vault, cp.Recipient, cp.Token, cp.Amount); err != nil {
		return nil, err
	}
	if err := s.storage.MarkExecuted(ctx, id); err != nil {
		return nil, err
	}

	cp.Executed = true
	return cp, nil
}

// Get retrieves a conditional payment by id
func (s *Service) Get(ctx context.Context, id int64) (*ConditionalPayment, error) {
	cp, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, ErrPaymentNotFound
	}
	return cp, nil
}
