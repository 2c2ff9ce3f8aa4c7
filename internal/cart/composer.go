// Package cart builds priced carts out of catalogue and tariff lookups.
package cart

import (
	"context"

	"copyshop/internal/model"
	"copyshop/internal/pricing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Composer mutates caller-owned carts. Prices are resolved at add time and
// frozen on the line; a price change in the catalogue does not reprice
// lines already in a cart.
type Composer struct {
	catalog pricing.ProductCatalog
	tariffs pricing.PrintTariffs
	logger  zerolog.Logger
}

// NewComposer creates a new cart composer.
func NewComposer(catalog pricing.ProductCatalog, tariffs pricing.PrintTariffs, logger zerolog.Logger) *Composer {
	return &Composer{
		catalog: catalog,
		tariffs: tariffs,
		logger:  logger.With().Str("component", "cart-composer").Logger(),
	}
}

// AddProduct adds quantity units of a stocked product to the cart. Repeat
// adds of the same product accumulate on the existing line instead of
// creating a duplicate.
func (c *Composer) AddProduct(ctx context.Context, crt *model.Cart, productID string, quantity int) error {
	if quantity <= 0 {
		c.logger.Warn().
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("rejected non-positive quantity")
		return model.ErrInvalidQuantity
	}

	if i := crt.FindProductLine(productID); i >= 0 {
		crt.Lines[i].Quantity += quantity
		c.logger.Debug().
			Str("product_id", productID).
			Int("quantity", crt.Lines[i].Quantity).
			Msg("accumulated quantity on existing product line")
		return nil
	}

	unitPrice, err := c.catalog.UnitPrice(ctx, productID)
	if err != nil {
		c.logger.Warn().Err(err).Str("product_id", productID).Msg("product price lookup failed")
		return err
	}

	crt.Lines = append(crt.Lines, model.LineItem{
		ID:        uuid.New(),
		Kind:      model.KindProduct,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})

	c.logger.Debug().
		Str("product_id", productID).
		Int("quantity", quantity).
		Msg("product line added")

	return nil
}

// PrintJob describes one uploaded document to be printed.
type PrintJob struct {
	FileRef   string
	FileName  string
	PageCount int
	Format    model.PrintFormat
	Color     bool
	Copies    int
}

// AddPrintJob appends a print line priced at pageCount times the per-page
// tariff. Every upload is a distinct line, even when two jobs share
// identical parameters.
func (c *Composer) AddPrintJob(ctx context.Context, crt *model.Cart, job PrintJob) error {
	if job.Copies <= 0 || job.PageCount < 1 {
		c.logger.Warn().
			Int("copies", job.Copies).
			Int("page_count", job.PageCount).
			Msg("rejected invalid print job quantities")
		return model.ErrInvalidQuantity
	}

	perPage, err := c.tariffs.PerPage(ctx, job.Format, job.Color)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("format", string(job.Format)).
			Bool("color", job.Color).
			Msg("tariff lookup failed")
		return err
	}

	unitPrice := perPage.Mul(decimal.NewFromInt(int64(job.PageCount)))

	crt.Lines = append(crt.Lines, model.LineItem{
		ID:        uuid.New(),
		Kind:      model.KindPrint,
		Quantity:  job.Copies,
		UnitPrice: unitPrice,
		PageCount: job.PageCount,
		Format:    job.Format,
		Color:     job.Color,
		FileRef:   job.FileRef,
		FileName:  job.FileName,
	})

	c.logger.Debug().
		Str("format", string(job.Format)).
		Bool("color", job.Color).
		Int("pages", job.PageCount).
		Int("copies", job.Copies).
		Msg("print line added")

	return nil
}

// RemoveLine removes the line with the given id. Removing an id that is not
// in the cart is a no-op, not an error.
func (c *Composer) RemoveLine(crt *model.Cart, lineID uuid.UUID) {
	for i, line := range crt.Lines {
		if line.ID == lineID {
			crt.Lines = append(crt.Lines[:i], crt.Lines[i+1:]...)
			c.logger.Debug().Str("line_id", lineID.String()).Msg("line removed")
			return
		}
	}
}

// Subtotal returns the cart subtotal.
func (c *Composer) Subtotal(crt *model.Cart) decimal.Decimal {
	return crt.Subtotal()
}
