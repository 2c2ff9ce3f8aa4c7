package pricing

import (
	"context"

	"copyshop/internal/model"

	"github.com/shopspring/decimal"
)

// tariffKey identifies one format and colour combination.
type tariffKey struct {
	format model.PrintFormat
	color  bool
}

// StaticTariffs is an in-memory PrintTariffs implementation. The table is
// read-only after construction, so lookups need no coordination.
type StaticTariffs struct {
	table map[tariffKey]decimal.Decimal
}

// NewStaticTariffs builds a tariff table from explicit entries.
func NewStaticTariffs() *StaticTariffs {
	return &StaticTariffs{table: make(map[tariffKey]decimal.Decimal)}
}

// Set registers the per-page price for a format and colour combination,
// replacing any previous entry.
func (t *StaticTariffs) Set(format model.PrintFormat, color bool, perPage decimal.Decimal) *StaticTariffs {
	t.table[tariffKey{format: format, color: color}] = perPage
	return t
}

// PerPage implements PrintTariffs.
func (t *StaticTariffs) PerPage(_ context.Context, format model.PrintFormat, color bool) (decimal.Decimal, error) {
	perPage, ok := t.table[tariffKey{format: format, color: color}]
	if !ok {
		return decimal.Zero, model.ErrTariffNotFound
	}
	return perPage, nil
}

// DefaultTariffs returns the shop's standard tariff table.
func DefaultTariffs() *StaticTariffs {
	return NewStaticTariffs().
		Set(model.FormatA4, false, decimal.NewFromInt(50)).
		Set(model.FormatA4, true, decimal.NewFromInt(150)).
		Set(model.FormatA3, false, decimal.NewFromInt(100)).
		Set(model.FormatA3, true, decimal.NewFromInt(300)).
		Set(model.FormatA5, false, decimal.NewFromInt(30)).
		Set(model.FormatA5, true, decimal.NewFromInt(80))
}
