package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// tierRepository implements the TierRepository interface using PostgreSQL.
type tierRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTierRepository creates a new PostgreSQL-backed discount tier repository.
func NewTierRepository(pool *pgxpool.Pool, logger zerolog.Logger) TierRepository {
	return &tierRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "tier").Logger(),
	}
}

// DiscountPercent returns the configured percent for a customer tier.
func (r *tierRepository) DiscountPercent(ctx context.Context, tierID string) (int, error) {
	query := `
		SELECT percent
		FROM discount_tiers
		WHERE id = $1
	`

	var percent int
	err := r.pool.QueryRow(ctx, query, tierID).Scan(&percent)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("tier_id", tierID).Msg("discount tier not found")
			return 0, fmt.Errorf("discount tier %s not found", tierID)
		}
		r.logger.Error().Err(err).Str("tier_id", tierID).Msg("failed to query discount tier")
		return 0, fmt.Errorf("failed to query discount tier: %w", err)
	}

	return percent, nil
}
