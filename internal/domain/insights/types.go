package insights

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OutcomeOK marks a lookup that produced an advisory.
const OutcomeOK = "ok"

// Lookup is one advisory request as seen by the HTTP layer.
type Lookup struct {
	ID           uuid.UUID `json:"id"`
	Query        string    `json:"query"`
	Place        string    `json:"place,omitempty"`
	Outcome      string    `json:"outcome"`
	Condition    string    `json:"condition,omitempty"`
	TemperatureC *float64  `json:"temperatureC,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TrendingPlace is an aggregated count of successful lookups.
type TrendingPlace struct {
	Place string `json:"place"`
	Count int64  `json:"count"`
}

// Store keeps per-place counters.
type Store interface {
	IncrementPlace(ctx context.Context, canonical, display string) error
	TopPlaces(ctx context.Context, limit int) ([]TrendingPlace, error)
}

// HistoryRepository persists the lookup log.
type HistoryRepository interface {
	Append(ctx context.Context, lookup Lookup) error
	ListRecent(ctx context.Context, limit int) ([]Lookup, error)
}

// Config controls insights limits.
type Config struct {
	TrendingLimit int
	RecentLimit   int
}
