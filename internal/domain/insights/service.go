package insights

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service records advisory lookups and serves aggregate reads.
type Service interface {
	Record(ctx context.Context, lookup Lookup) error
	Trending(ctx context.Context) ([]TrendingPlace, error)
	Recent(ctx context.Context, limit int) ([]Lookup, error)
}

type service struct {
	cfg     Config
	store   Store
	history HistoryRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires the insights domain.
func NewService(cfg Config, store Store, history HistoryRepository, logger *slog.Logger) Service {
	if cfg.TrendingLimit <= 0 {
		cfg.TrendingLimit = 10
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 50
	}
	return &service{
		cfg:     cfg,
		store:   store,
		history: history,
		logger:  logger.With("component", "insights.service"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Record(ctx context.Context, lookup Lookup) error {
	if lookup.ID == uuid.Nil {
		lookup.ID = uuid.New()
	}
	if lookup.CreatedAt.IsZero() {
		lookup.CreatedAt = s.now()
	}
	lookup.Query = strings.TrimSpace(lookup.Query)

	if err := s.history.Append(ctx, lookup); err != nil {
		return fmt.Errorf("append lookup: %w", err)
	}
	if lookup.Outcome != OutcomeOK {
		return nil
	}
	display := strings.TrimSpace(lookup.Place)
	if display == "" {
		display = lookup.Query
	}
	if err := s.store.IncrementPlace(ctx, normalizePlace(display), display); err != nil {
		return fmt.Errorf("increment place: %w", err)
	}
	s.logger.Debug("lookup recorded", "id", lookup.ID, "outcome", lookup.Outcome)
	return nil
}

func (s *service) Trending(ctx context.Context) ([]TrendingPlace, error) {
	return s.store.TopPlaces(ctx, s.cfg.TrendingLimit)
}

func (s *service) Recent(ctx context.Context, limit int) ([]Lookup, error) {
	if limit <= 0 || limit > s.cfg.RecentLimit {
		limit = s.cfg.RecentLimit
	}
	return s.history.ListRecent(ctx, limit)
}
