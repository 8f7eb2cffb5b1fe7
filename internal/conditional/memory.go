package conditional

import (
	"context"
	"sync"
)

// MemoryStorage implements Storage in memory. Thread-safe via mutex.
type MemoryStorage struct {
	mu       sync.Mutex
	payments map[int64]*ConditionalPayment
	nextID   int64
}

// NewMemoryStorage creates an empty in-memory conditional payment table
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		payments: make(map[int64]*ConditionalPayment),
		nextID:   1,
	}
}

func (s *MemoryStorage) Create(ctx context.Context, cp *ConditionalPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp.ID = s.nextID
	s.nextID++
	val := *cp
	s.payments[cp.ID] = &val
	return nil
}

func (s *MemoryStorage) GetByID(ctx context.Context, id int64) (*ConditionalPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cp, ok := s.payments[id]; ok {
		val := *cp
		return &val, nil
	}
	return nil, nil
}

func (s *MemoryStorage) MarkExecuted(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cp, ok := s.payments[id]; ok {
		cp.Executed = true
	}
	return nil
}
