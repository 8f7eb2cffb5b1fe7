package ledger

import (
	"context"
	"sync"
)

// MemoryStorage implements Storage in memory. Thread-safe via mutex.
type MemoryStorage struct {
	mu       sync.Mutex
	balances map[string]map[string]int64 // account -> token -> amount
}

// NewMemoryStorage creates an empty in-memory ledger
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		balances: make(map[string]map[string]int64),
	}
}

func (s *MemoryStorage) Balance(ctx context.Context, account, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balances[account][token], nil
}

func (s *MemoryStorage) Credit(ctx context.Context, account, token string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(account, token, amount)
	return nil
}

func (s *MemoryStorage) Debit(ctx context.Context, account, token string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balances[account][token] < amount {
		return ErrInsufficientFunds
	}
	s.add(account, token, -amount)
	return nil
}

func (s *MemoryStorage) Transfer(ctx context.Context, from, to, token string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.balances[from][token] < amount {
		return ErrInsufficientFunds
	}
	s.add(from, token, -amount)
	s.add(to, token, amount)
	return nil
}

// add assumes the caller holds the lock
func (s *MemoryStorage) add(account, token string, delta int64) {
	if s.balances[account] == nil {
		s.balances[account] = make(map[string]int64)
	}
	s.balances[account][token] += delta
}
