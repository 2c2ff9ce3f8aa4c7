package repository

import (
	"context"

	"copyshop/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for catalogue data access.
// UnitPrice satisfies pricing.ProductCatalog.
type ProductRepository interface {
	// GetAll retrieves active products with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID, nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// UnitPrice returns the catalogue price for a product, or
	// model.ErrProductNotFound for an unknown or inactive product.
	UnitPrice(ctx context.Context, productID string) (decimal.Decimal, error)
}

// TariffRepository defines the interface for print tariff lookups.
// PerPage satisfies pricing.PrintTariffs.
type TariffRepository interface {
	// PerPage returns the per-page price for a format and colour
	// combination, or model.ErrTariffNotFound when none is configured.
	PerPage(ctx context.Context, format model.PrintFormat, color bool) (decimal.Decimal, error)
}

// TierRepository defines the interface for discount tier lookups.
// DiscountPercent satisfies discount.TierDirectory.
type TierRepository interface {
	// DiscountPercent returns the configured percent for a tier. Unknown
	// tiers are an error; the discount resolver degrades that to 0%.
	DiscountPercent(ctx context.Context, tierID string) (int, error)
}

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create persists a new order with its lines and initial history in a
	// single transaction. All-or-nothing: a failed checkout leaves no rows.
	Create(ctx context.Context, order *model.Order) error

	// GetByID rehydrates an order with its lines and ordered history.
	// Returns nil when the order does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListByCustomer returns a customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)

	// UpdateState writes the order's current state, correction reason and
	// newest history entry, guarded by expectedVersion. A version mismatch
	// means a concurrent writer won the race: model.ErrConflict.
	UpdateState(ctx context.Context, order *model.Order, expectedVersion int64) error
}
