package department

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage implements Storage in memory. Thread-safe via mutex.
type MemoryStorage struct {
	mu          sync.Mutex
	departments map[int64]*Department
	nextID      int64
}

// NewMemoryStorage creates an empty in-memory department table
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		departments: make(map[int64]*Department),
		nextID:      1,
	}
}

func clone(d *Department) *Department {
	val := *d
	val.Managers = append([]string(nil), d.Managers...)
	return &val
}

func (s *MemoryStorage) Create(ctx context.Context, d *Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = s.nextID
	s.nextID++
	s.departments[d.ID] = clone(d)
	return nil
}

func (s *MemoryStorage) GetByID(ctx context.Context, id int64) (*Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d, ok := s.departments[id]; ok {
		return clone(d), nil
	}
	return nil, nil
}

func (s *MemoryStorage) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*Department, 0, len(s.departments))
	for _, d := range s.departments {
		all = append(all, clone(d))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

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

func (s *MemoryStorage) Update(ctx context.Context, d *Department) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.departments[d.ID]
	if !ok {
		return nil
	}
	stored.SpentThisMonth = d.SpentThisMonth
	stored.LastResetTime = d.LastResetTime
	stored.Active = d.Active
	return nil
}
