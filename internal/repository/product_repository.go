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

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

// GetAll retrieves active products with pagination support.
func (r *productRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	query := `
		SELECT id, name, description, unit_price::text, active, created_at
		FROM products
		WHERE active
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT id, name, description, unit_price::text, active, created_at
		FROM products
		WHERE id = $1
	`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// UnitPrice returns the catalogue price of an active product. Unknown or
// inactive products fail loudly so the cart never prices a line at zero.
func (r *productRepository) UnitPrice(ctx context.Context, productID string) (decimal.Decimal, error) {
	query := `
		SELECT unit_price::text
		FROM products
		WHERE id = $1 AND active
	`

	var raw string
	err := r.pool.QueryRow(ctx, query, productID).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", productID).Msg("product not found for pricing")
			return decimal.Zero, model.ErrProductNotFound
		}
		r.logger.Error().Err(err).Str("product_id", productID).Msg("failed to query product price")
		return decimal.Zero, fmt.Errorf("failed to query product price: %w", err)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse product price %q: %w", raw, err)
	}
	return price, nil
}

// scanProduct reads one product row.
func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p   model.Product
		raw string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &raw, &p.Active, &p.CreatedAt); err != nil {
		return model.Product{}, err
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to parse unit price %q: %w", raw, err)
	}
	p.UnitPrice = price
	return p, nil
}
