package department

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fkhayef/treasury/internal/payment"
)

// Common errors
var (
	ErrDepartmentNotFound      = errors.New("department not found")
	ErrDepartmentNotActive     = errors.New("department is not active")
	ErrInvalidName             = errors.New("department name must not be empty")
	ErrInvalidBudget           = errors.New("monthly budget must be positive")
	ErrExceedsDepartmentBudget = errors.New("payment exceeds remaining department budget")
)

// Service enforces per-department monthly ceilings on top of the payment
// registry. Budget is consumed at schedule time (reservation semantics):
// two concurrent schedules can never jointly overshoot the ceiling,
// because the check and the reservation run under one mutex.
type Service struct {
	mu         sync.Mutex
	storage    Storage
	paymentSvc *payment.Service

	now func() time.Time
}

// NewService creates a new department service
func NewService(storage Storage, paymentSvc *payment.Service) *Service {
	return &Service{
		storage:    storage,
		paymentSvc: paymentSvc,
		now:        time.Now,
	}
}

// WithClock overrides the service clock
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create registers a new department
func (s *Service) Create(ctx context.Context, req *CreateDepartmentRequest) (*Department, error) {
	if req.Name == "" {
		return nil, ErrInvalidName
	}
	if req.MonthlyBudget <= 0 {
		return nil, ErrInvalidBudget
	}

	now := s.now()
	d := &Department{
		Name:          req.Name,
		MonthlyBudget: req.MonthlyBudget,
		Managers:      req.Managers,
		LastResetTime: now,
		Active:        true,
		CreatedAt:     now,
	}
	if err := s.storage.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetByID retrieves a department, with the lazy monthly reset applied to
// the returned snapshot
func (s *Service) GetByID(ctx context.Context, id int64) (*Department, error) {
	d, err := s.storage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDepartmentNotFound
	}
	s.applyLazyReset(d, s.now())
	return d, nil
}

// List retrieves departments with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Department, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	departments, total, err := s.storage.List(ctx, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	now := s.now()
	for _, d := range departments {
		s.applyLazyReset(d, now)
	}
	return departments, total, nil
}

// SchedulePayment schedules a payment against a department's budget. The
// ceiling check, the delegation to the registry and the reservation are
// one serialized step; a rejected schedule leaves the counter untouched.
func (s *Service) SchedulePayment(ctx context.Context, departmentID int64, req *payment.SchedulePaymentRequest) (*payment.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.storage.GetByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrDepartmentNotFound
	}
	if !d.Active {
		return nil, ErrDepartmentNotActive
	}

	now := s.now()
	s.applyLazyReset(d, now)

	if d.SpentThisMonth+req.Amount > d.MonthlyBudget {
		return nil, ErrExceedsDepartmentBudget
	}

	p, err := s.paymentSvc.Schedule(ctx, req)
	if err != nil {
		return nil, err
	}

	d.SpentThisMonth += req.Amount
	if err := s.storage.Update(ctx, d); err != nil {
		return nil, err
	}
	return p, nil
}

// ApprovalConfig exposes the registry's approval configuration for
// response building
func (s *Service) ApprovalConfig(ctx context.Context) (*payment.Config, error) {
	return s.paymentSvc.GetConfig(ctx)
}

// applyLazyReset zeroes the reservation counter once a budget period has
// elapsed, advancing last_reset_time in whole periods so the cadence
// does not drift
func (s *Service) applyLazyReset(d *Department, now time.Time) {
	elapsed := now.Sub(d.LastResetTime)
	if elapsed < BudgetPeriod {
		return
	}
	periods := elapsed / BudgetPeriod
	d.SpentThisMonth = 0
	d.LastResetTime = d.LastResetTime.Add(periods * BudgetPeriod)
}
