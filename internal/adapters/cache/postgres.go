package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/im-vetri/Useful-APIs/internal/domain"
)

// PostgresDistanceCache persists resolved pairs in a distance_cache table,
// surviving restarts at the cost of a round trip per lookup.
type PostgresDistanceCache struct {
	DB *sql.DB
}

func NewPostgresDistanceCache(db *sql.DB) *PostgresDistanceCache {
	return &PostgresDistanceCache{DB: db}
}

func (c *PostgresDistanceCache) Get(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
) (*domain.DistanceResult, error) {
	var (
		meters   float64
		seconds  sql.NullFloat64
		provider string
	)
	err := c.DB.QueryRowContext(ctx,
		`SELECT distance_meters, duration_seconds, provider
		   FROM distance_cache
		  WHERE pair_key = $1`,
		pairKey(origin, destination, profile),
	).Scan(&meters, &seconds, &provider)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: select distance: %w", err)
	}

	res := &domain.DistanceResult{DistanceMeters: meters, Provider: provider}
	if seconds.Valid {
		res.DurationSeconds = domain.Seconds(seconds.Float64)
	}
	return res, nil
}

func (c *PostgresDistanceCache) Put(
	ctx context.Context,
	origin, destination domain.Point,
	profile domain.Profile,
	res domain.DistanceResult,
) error {
	var seconds sql.NullFloat64
	if res.DurationSeconds != nil {
		seconds = sql.NullFloat64{Float64: *res.DurationSeconds, Valid: true}
	}

	_, err := c.DB.ExecContext(ctx,
		`INSERT INTO distance_cache (pair_key, distance_meters, duration_seconds, provider, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (pair_key) DO UPDATE
		    SET distance_meters  = EXCLUDED.distance_meters,
		        duration_seconds = EXCLUDED.duration_seconds,
		        provider         = EXCLUDED.provider,
		        updated_at       = NOW()`,
		pairKey(origin, destination, profile), res.DistanceMeters, seconds, res.Provider,
	)
	if err != nil {
		return fmt.Errorf("cache: upsert distance: %w", err)
	}
	return nil
}

// InitSchema creates the cache table when missing. cmd/cachetool runs this
// once per environment.
func InitSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS distance_cache (
			pair_key         TEXT PRIMARY KEY,
			distance_meters  DOUBLE PRECISION NOT NULL,
			duration_seconds DOUBLE PRECISION,
			provider         TEXT NOT NULL,
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("cache: create distance_cache table: %w", err)
	}
	return nil
}
