package payment

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage implements Storage in memory. Thread-safe via mutex.
type MemoryStorage struct {
	mu       sync.Mutex
	payments map[int64]*Payment
	nextID   int64
	config   *Config
}

// NewMemoryStorage creates an empty in-memory payment store
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		payments: make(map[int64]*Payment),
		nextID:   1,
	}
}

func clonePayment(p *Payment) *Payment {
	val := *p
	val.ApprovedBy = append([]string(nil), p.ApprovedBy...)
	return &val
}

func (s *MemoryStorage) CreatePayment(ctx context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID
	s.nextID++
	s.payments[p.ID] = clonePayment(p)
	return nil
}

func (s *MemoryStorage) GetPayment(ctx context.Context, id int64) (*Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.payments[id]; ok {
		return clonePayment(p), nil
	}
	return nil, nil
}

func (s *MemoryStorage) ListPayments(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*Payment, 0, len(s.payments))
	for _, p := range s.payments {
		all = append(all, clonePayment(p))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

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

func (s *MemoryStorage) UpdatePayment(ctx context.Context, p *Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.payments[p.ID]
	if !ok {
		return nil
	}
	stored.Active = p.Active
	stored.NextExecutionTime = p.NextExecutionTime
	return nil
}

func (s *MemoryStorage) AddApproval(ctx context.Context, paymentID int64, approver string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil
	}
	for _, a := range p.ApprovedBy {
		if a == approver {
			return nil
		}
	}
	p.ApprovedBy = append(p.ApprovedBy, approver)
	return nil
}

func (s *MemoryStorage) RemoveApproval(ctx context.Context, paymentID int64, approver string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[paymentID]
	if !ok {
		return nil
	}
	for i, a := range p.ApprovedBy {
		if a == approver {
			p.ApprovedBy = append(p.ApprovedBy[:i], p.ApprovedBy[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStorage) GetConfig(ctx context.Context) (*Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.config == nil {
		return nil, nil
	}
	val := *s.config
	val.Approvers = append([]string(nil), s.config.Approvers...)
	return &val, nil
}

func (s *MemoryStorage) SetConfig(ctx context.Context, cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	val := *cfg
	val.Approvers = append([]string(nil), cfg.Approvers...)
	s.config = &val
	return nil
}
