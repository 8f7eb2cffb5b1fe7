package ledger

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrUnsupportedToken = errors.New("unsupported token")
	ErrInvalidAccount   = errors.New("account must not be empty")
)

// Service handles balance business logic. All fund movement in the
// treasury goes through here; no other component keeps a shadow balance.
type Service struct {
	storage Storage
}

// NewService creates a new ledger service
func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Balance returns the holdings of an account in a token
func (s *Service) Balance(ctx context.Context, account, token string) (int64, error) {
	if account == "" {
		return 0, ErrInvalidAccount
	}
	if !IsSupportedToken(token) {
		return 0, ErrUnsupportedToken
	}
	return s.storage.Balance(ctx, account, token)
}

// Fund credits the vault with freshly deposited pool money
func (s *Service) Fund(ctx context.Context, token string, amount int64) error {
	return s.Credit(ctx, Vault, token, amount)
}

// Credit adds funds to an account
func (s *Service) Credit(ctx context.Context, account, token string, amount int64) error {
	if account == "" {
		return ErrInvalidAccount
	}
	if !IsSupportedToken(token) {
		return ErrUnsupportedToken
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.storage.Credit(ctx, account, token, amount)
}

// Debit removes funds from an account
func (s *Service) Debit(ctx context.Context, account, token string, amount int64) error {
	if account == "" {
		return ErrInvalidAccount
	}
	if !IsSupportedToken(token) {
		return ErrUnsupportedToken
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.storage.Debit(ctx, account, token, amount)
}

// Transfer atomically moves funds between two accounts
func (s *Service) Transfer(ctx context.Context, from, to, token string, amount int64) error {
	if from == "" || to == "" {
		return ErrInvalidAccount
	}
	if !IsSupportedToken(token) {
		return ErrUnsupportedToken
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return s.storage.Transfer(ctx, from, to, token, amount)
}
