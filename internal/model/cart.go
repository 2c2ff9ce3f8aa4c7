package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the mutable, pre-checkout collection of line items for one
// customer. It is a plain value owned by the caller; nothing in the engine
// holds on to it between requests.
type Cart struct {
	CustomerID uuid.UUID  `json:"customerId"`
	Lines      []LineItem `json:"lines"`
}

// Subtotal sums the line subtotals. An empty cart totals zero.
func (c Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// FindProductLine returns the index of the product line for productID,
// or -1 when the cart holds none.
func (c Cart) FindProductLine(productID string) int {
	for i, line := range c.Lines {
		if line.Kind == KindProduct && line.ProductID == productID {
			return i
		}
	}
	return -1
}
