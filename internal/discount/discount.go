// Package discount resolves per-customer discount tiers and applies them
// to order subtotals.
package discount

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TierDirectory looks up the discount percent configured for a customer
// tier. Implementations must return a percent in [0,100]; anything else is
// treated as a lookup failure.
type TierDirectory interface {
	DiscountPercent(ctx context.Context, tierID string) (int, error)
}

// Resolver turns a customer tier into a discount percent. Lookup problems
// degrade to 0% rather than blocking checkout.
type Resolver struct {
	tiers  TierDirectory
	logger zerolog.Logger
}

// NewResolver creates a new discount resolver.
func NewResolver(tiers TierDirectory, logger zerolog.Logger) *Resolver {
	return &Resolver{
		tiers:  tiers,
		logger: logger.With().Str("component", "discount-resolver").Logger(),
	}
}

// Resolve returns the discount percent for the tier, or 0 when the tier is
// unknown, the lookup fails, or the directory returns an out-of-range
// value. It never returns an error.
func (r *Resolver) Resolve(ctx context.Context, tierID string) int {
	if tierID == "" {
		return 0
	}

	percent, err := r.tiers.DiscountPercent(ctx, tierID)
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("tier_id", tierID).
			Msg("tier lookup failed, applying no discount")
		return 0
	}

	if percent < 0 || percent > 100 {
		r.logger.Warn().
			Str("tier_id", tierID).
			Int("percent", percent).
			Msg("tier directory returned out-of-range percent, applying no discount")
		return 0
	}

	return percent
}

// Apply computes the discounted total and the savings for a subtotal.
// The 0% and 100% boundaries are exact: no rounding drift.
func Apply(subtotal decimal.Decimal, percent int) (total, savings decimal.Decimal) {
	switch percent {
	case 0:
		return subtotal, decimal.Zero
	case 100:
		return decimal.Zero, subtotal
	}

	factor := decimal.NewFromInt(int64(100 - percent)).Div(decimal.NewFromInt(100))
	total = subtotal.Mul(factor)
	return total, subtotal.Sub(total)
}
