package crosschain

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage implements Storage in memory. Thread-safe via mutex.
type MemoryStorage struct {
	mu       sync.Mutex
	payments map[int64]*CrossChainPayment
}

// NewMemoryStorage creates an empty in-memory cross-chain table
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{payments: make(map[int64]*CrossChainPayment)}
}

func (s *MemoryStorage) Create(ctx context.Context, cc *CrossChainPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	val := *cc
	s.payments[cc.PaymentID] = &val
	return nil
}

func (s *MemoryStorage) GetByPaymentID(ctx context.Context, paymentID int64) (*CrossChainPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cc, ok := s.payments[paymentID]; ok {
		val := *cc
		return &val, nil
	}
	return nil, nil
}

func (s *MemoryStorage) SetExternalReference(ctx context.Context, paymentID int64, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cc, ok := s.payments[paymentID]; ok {
		now := time.Now()
		cc.ExternalReference = reference
		cc.InitiatedAt = &now
	}
	return nil
}
