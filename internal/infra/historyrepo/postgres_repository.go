package historyrepo

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/meteomag/internal/domain/insights"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS advisory_lookups (
	id UUID PRIMARY KEY,
	query_text TEXT NOT NULL,
	place TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL,
	condition TEXT NOT NULL DEFAULT '',
	temperature_c DOUBLE PRECISION,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_advisory_lookups_created ON advisory_lookups(created_at DESC);
`

// PostgresRepository implements insights.HistoryRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the lookup table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, schemaSQL)
	return err
}

// Append inserts one lookup row.
func (r *PostgresRepository) Append(ctx context.Context, lookup insights.Lookup) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO advisory_lookups (id, query_text, place, outcome, condition, temperature_c, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, lookup.ID, lookup.Query, lookup.Place, lookup.Outcome, lookup.Condition, lookup.TemperatureC, lookup.CreatedAt)
	return err
}

// ListRecent returns the newest lookups first.
func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]insights.Lookup, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, query_text, place, outcome, condition, temperature_c, created_at
		FROM advisory_lookups
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []insights.Lookup
	for rows.Next() {
		var (
			entry insights.Lookup
			temp  sql.NullFloat64
		)
		if err := rows.Scan(&entry.ID, &entry.Query, &entry.Place, &entry.Outcome, &entry.Condition, &temp, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if temp.Valid {
			value := temp.Float64
			entry.TemperatureC = &value
		}
		lookups = append(lookups, entry)
	}
	return lookups, rows.Err()
}

var _ insights.HistoryRepository = (*PostgresRepository)(nil)
