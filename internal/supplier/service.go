package supplier

import (
	"context"
	"errors"
	"time"

	"github.com/fkhayef/treasury/internal/ledger"
)

// Common errors
var (
	ErrSupplierNotFound      = errors.New("supplier not found")
	ErrSupplierAlreadyExists = errors.New("supplier already registered")
	ErrInvalidAddress        = errors.New("supplier address must not be empty")
	ErrUnsupportedToken      = errors.New("unsupported preferred token")
)

// Service handles supplier business logic
type Service struct {
	storage Storage
}

// NewService creates a new supplier service
func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Register adds a new supplier to the registry
func (s *Service) Register(ctx context.Context, req *RegisterSupplierRequest) (*Supplier, error) {
	if req.Address == "" {
		return nil, ErrInvalidAddress
	}
	if req.PreferredToken != "" && !ledger.IsSupportedToken(req.PreferredToken) {
		return nil, ErrUnsupportedToken
	}

	existing, err := s.storage.GetByAddress(ctx, req.Address)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Name != "" {
		return nil, ErrSupplierAlreadyExists
	}

	sup := &Supplier{
		Address:        req.Address,
		Name:           req.Name,
		PreferredToken: req.PreferredToken,
		Active:         true,
		CreatedAt:      time.Now(),
	}
	if existing != nil {
		// Payments were recorded before registration; keep the stats.
		sup.TotalPaid = existing.TotalPaid
		sup.PaymentCount = existing.PaymentCount
	}
	if err := s.storage.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

// GetByAddress retrieves a supplier by address
func (s *Service) GetByAddress(ctx context.Context, address string) (*Supplier, error) {
	sup, err := s.storage.GetByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, ErrSupplierNotFound
	}
	return sup, nil
}

// List retrieves suppliers with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Supplier, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.storage.List(ctx, perPage, offset)
}

// RecordPayment accumulates execution statistics for a recipient
func (s *Service) RecordPayment(ctx context.Context, address string, amount int64) error {
	return s.storage.RecordPayment(ctx, address, amount)
}
