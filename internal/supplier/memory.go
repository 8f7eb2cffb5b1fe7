package supplier

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage implements Storage in memory. Thread-safe via mutex.
type MemoryStorage struct {
	mu        sync.Mutex
	suppliers map[string]*Supplier
}

// NewMemoryStorage creates an empty in-memory supplier table
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{suppliers: make(map[string]*Supplier)}
}

func (s *MemoryStorage) Create(ctx context.Context, sup *Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	val := *sup
	s.suppliers[sup.Address] = &val
	return nil
}

func (s *MemoryStorage) GetByAddress(ctx context.Context, address string) (*Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sup, ok := s.suppliers[address]; ok {
		val := *sup
		return &val, nil
	}
	return nil, nil
}

func (s *MemoryStorage) List(ctx context.Context, limit, offset int) ([]*Supplier, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*Supplier, 0, len(s.suppliers))
	for _, sup := range s.suppliers {
		val := *sup
		all = append(all, &val)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (s *MemoryStorage) RecordPayment(ctx context.Context, address string, amount int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sup, ok := s.suppliers[address]
	if !ok {
		sup = &Supplier{Address: address, Active: true, CreatedAt: time.Now()}
		s.suppliers[address] = sup
	}
	sup.TotalPaid += amount
	sup.PaymentCount++
	return nil
}
