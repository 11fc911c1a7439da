package historyrepo

import (
	"context"
	"sync"

	"github.com/yanqian/meteomag/internal/domain/insights"
)

const defaultMemoryCapacity = 500

// MemoryRepository keeps the newest lookups in a bounded slice.
type MemoryRepository struct {
	mu       sync.RWMutex
	capacity int
	lookups  []insights.Lookup
}

// NewMemoryRepository constructs an in-memory history; capacity <= 0 uses the default.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryRepository{capacity: capacity}
}

func (r *MemoryRepository) Append(_ context.Context, lookup insights.Lookup) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups = append(r.lookups, lookup)
	if overflow := len(r.lookups) - r.capacity; overflow > 0 {
		r.lookups = append([]insights.Lookup(nil), r.lookups[overflow:]...)
	}
	return nil
}

func (r *MemoryRepository) ListRecent(_ context.Context, limit int) ([]insights.Lookup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.lookups) {
		limit = len(r.lookups)
	}
	out := make([]insights.Lookup, 0, limit)
	for i := len(r.lookups) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.lookups[i])
	}
	return out, nil
}

var _ insights.HistoryRepository = (*MemoryRepository)(nil)
