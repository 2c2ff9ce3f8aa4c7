// Package pricing defines the price lookup ports used by the cart composer.
package pricing

import (
	"context"

	"copyshop/internal/model"

	"github.com/shopspring/decimal"
)

// ProductCatalog resolves the unit price of a stocked product.
type ProductCatalog interface {
	// UnitPrice returns the catalogue price for the product, or
	// model.ErrProductNotFound for an unknown ID. It never substitutes a
	// default price.
	UnitPrice(ctx context.Context, productID string) (decimal.Decimal, error)
}

// PrintTariffs resolves the per-page price of a print job.
type PrintTariffs interface {
	// PerPage returns the price per page for the format and colour
	// combination, or model.ErrTariffNotFound when the shop does not offer
	// it. It never substitutes a default price.
	PerPage(ctx context.Context, format model.PrintFormat, color bool) (decimal.Decimal, error)
}
