package insightstore

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/meteomag/internal/domain/insights"
)

// MemoryStore keeps place counters in process memory for tests/dev.
type MemoryStore struct {
	mu       sync.RWMutex
	counts   map[string]int64
	displays map[string]string
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counts:   make(map[string]int64),
		displays: make(map[string]string),
	}
}

// IncrementPlace bumps the counter for a canonical place and records its first display name.
func (s *MemoryStore) IncrementPlace(_ context.Context, canonical, display string) error {
	if canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[canonical]++
	if _, exists := s.displays[canonical]; !exists {
		s.displays[canonical] = display
	}
	return nil
}

// TopPlaces returns the most requested places, ties ordered by name.
func (s *MemoryStore) TopPlaces(_ context.Context, limit int) ([]insights.TrendingPlace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = len(s.counts)
	}
	items := make([]insights.TrendingPlace, 0, len(s.counts))
	for canonical, count := range s.counts {
		display := s.displays[canonical]
		if display == "" {
			display = canonical
		}
		items = append(items, insights.TrendingPlace{Place: display, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Place < items[j].Place
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

var _ insights.Store = (*MemoryStore)(nil)
