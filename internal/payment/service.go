package payment

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fkhayef/treasury/internal/ledger"
	"github.com/fkhayef/treasury/internal/supplier"
)

// Common errors
var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidRecipient = errors.New("recipient must not be empty")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrUnsupportedToken = errors.New("unsupported token")
	ErrPaymentNotActive = errors.New("payment is not active")
)

// Service implements the payment registry, the approval engine and the
// executor over one serialized state machine: every mutating operation
// runs under the service mutex so its effects apply atomically and in
// total order. Vote counting and execution never interleave.
type Service struct {
	mu          sync.Mutex
	storage     Storage
	ledgerSvc   *ledger.Service
	supplierSvc *supplier.Service

	// now is the clock; tests substitute a fixed one
	now func() time.Time
}

// NewService creates a new payment service
func NewService(storage Storage, ledgerSvc *ledger.Service, supplierSvc *supplier.Service) *Service {
	return &Service{
		storage:     storage,
		ledgerSvc:   ledgerSvc,
		supplierSvc: supplierSvc,
		now:         time.Now,
	}
}

// WithClock overrides the service clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Bootstrap seeds the approval configuration when none is stored yet
func (s *Service) Bootstrap(ctx context.Context, cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.storage.GetConfig(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	cfg.Version = 1
	return s.storage.SetConfig(ctx, cfg)
}

// Schedule registers a new payment. Whether the payment will need
// multi-party approval is decided here, against the threshold in force
// right now, and never revisited.
func (s *Service) Schedule(ctx context.Context, req *SchedulePaymentRequest) (*Payment, error) {
	if req.Recipient == "" {
		return nil, ErrInvalidRecipient
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !ledger.IsSupportedToken(req.Token) {
		return nil, ErrUnsupportedToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, err := s.config(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	p := &Payment{
		Recipient:         req.Recipient,
		Token:             req.Token,
		Amount:            req.Amount,
		IntervalSeconds:   req.IntervalSeconds,
		NextExecutionTime: now.Add(time.Duration(req.IntervalSeconds) * time.Second),
		Description:       req.Description,
		Active:            true,
		RequiresApproval:  req.Amount >= cfg.ApprovalThreshold,
		CreatedAt:         now,
	}
	if p.RequiresApproval {
		p.ApprovalDeadline = now.Add(time.Duration(cfg.TimelockSeconds) * time.Second)
	}

	if err := s.storage.CreatePayment(ctx, p); err != nil {
		return nil, err
	}
	paymentsScheduled.Inc()
	return p, nil
}

// Cancel deactivates a payment. Cancellation is unconditional, immediate
// and terminal: it disables approval, revocation and execution.
func (s *Service) Cancel(ctx context.Context, id int64) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.storage.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if !p.Active {
		return nil, ErrPaymentNotActive
	}

	p.Active = false
	if err := s.storage.UpdatePayment(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get retrieves a payment snapshot by id
func (s *Service) Get(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.storage.GetPayment(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// List retrieves payments with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Payment, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.storage.ListPayments(ctx, perPage, offset)
}

// CanExecute evaluates execution eligibility against the current clock
// and approval configuration
func (s *Service) CanExecute(ctx context.Context, id int64) (bool, error) {
	p, err := s.storage.GetPayment(ctx, id)
	if err != nil {
		return false, err
	}
	if p == nil {
		return false, ErrPaymentNotFound
	}

	cfg, err := s.config(ctx)
	if err != nil {
		return false, err
	}
	return p.CanExecute(s.now(), cfg.RequiredApprovals), nil
}

// config loads the approval configuration; the engine cannot run without
// one, so a missing record is an error rather than a nil
func (s *Service) config(ctx context.Context) (*Config, error) {
	cfg, err := s.storage.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.New("approval configuration not bootstrapped")
	}
	return cfg, nil
}
