package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineKind distinguishes the two kinds of purchasable line.
type LineKind string

const (
	KindProduct LineKind = "product"
	KindPrint   LineKind = "print"
)

// PrintFormat is a paper size accepted by the print service.
type PrintFormat string

const (
	FormatA0 PrintFormat = "A0"
	FormatA1 PrintFormat = "A1"
	FormatA2 PrintFormat = "A2"
	FormatA3 PrintFormat = "A3"
	FormatA4 PrintFormat = "A4"
	FormatA5 PrintFormat = "A5"
	FormatA6 PrintFormat = "A6"
)

// ValidFormat reports whether f is one of the accepted paper sizes.
func ValidFormat(f PrintFormat) bool {
	switch f {
	case FormatA0, FormatA1, FormatA2, FormatA3, FormatA4, FormatA5, FormatA6:
		return true
	default:
		return false
	}
}

// LineItem is one priced unit of purchase: a stocked product or a print job.
// UnitPrice is fixed when the line is added; re-pricing requires removing
// and re-adding the line.
type LineItem struct {
	ID        uuid.UUID       `json:"id"`
	Kind      LineKind        `json:"kind"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`

	// Product lines only.
	ProductID string `json:"productId,omitempty"`
	Name      string `json:"name,omitempty"`

	// Print lines only.
	PageCount int         `json:"pageCount,omitempty"`
	Format    PrintFormat `json:"format,omitempty"`
	Color     bool        `json:"color,omitempty"`
	FileRef   string      `json:"fileRef,omitempty"`
	FileName  string      `json:"fileName,omitempty"`
}

// Subtotal returns unit price times quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
