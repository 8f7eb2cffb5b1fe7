package yield

import (
	"context"
	"sort"
	"sync"
)

// MemoryStorage implements Storage in memory. Thread-safe via mutex.
type MemoryStorage struct {
	mu        sync.Mutex
	positions map[string]*YieldPosition
}

// NewMemoryStorage creates an empty in-memory position table
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{positions: make(map[string]*YieldPosition)}
}

func (s *MemoryStorage) Get(ctx context.Context, token, strategyKind string) (*YieldPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pos, ok := s.positions[key(token, strategyKind)]; ok {
		val := *pos
		return &val, nil
	}
	return nil, nil
}

func (s *MemoryStorage) Set(ctx context.Context, pos *YieldPosition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	val := *pos
	s.positions[key(pos.Token, pos.StrategyKind)] = &val
	return nil
}

func (s *MemoryStorage) List(ctx context.Context) ([]*YieldPosition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*YieldPosition, 0, len(s.positions))
	for _, pos := range s.positions {
		val := *pos
		all = append(all, &val)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Token != all[j].Token {
			return all[i].Token < all[j].Token
		}
		return all[i].StrategyKind < all[j].StrategyKind
	})
	return all, nil
}
