package repository

import (
	"context"
	"fmt"

	"copyshop/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// tariffRepository implements the TariffRepository interface using PostgreSQL.
type tariffRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTariffRepository creates a new PostgreSQL-backed tariff repository.
func NewTariffRepository(pool *pgxpool.Pool, logger zerolog.Logger) TariffRepository {
	return &tariffRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "tariff").Logger(),
	}
}

// PerPage returns the per-page price for a format and colour combination.
func (r *tariffRepository) PerPage(ctx context.Context, format model.PrintFormat, color bool) (decimal.Decimal, error) {
	query := `
		SELECT per_page::text
		FROM print_tariffs
		WHERE format = $1 AND color = $2 AND active
	`

	var raw string
	err := r.pool.QueryRow(ctx, query, string(format), color).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().
				Str("format", string(format)).
				Bool("color", color).
				Msg("tariff not found")
			return decimal.Zero, model.ErrTariffNotFound
		}
		r.logger.Error().
			Err(err).
			Str("format", string(format)).
			Bool("color", color).
			Msg("failed to query tariff")
		return decimal.Zero, fmt.Errorf("failed to query tariff: %w", err)
	}

	perPage, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse tariff %q: %w", raw, err)
	}
	return perPage, nil
}
