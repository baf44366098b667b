package discount

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/rizalmf/backend-storefront/internal/config"
	"github.com/rizalmf/backend-storefront/internal/money"
)

// ErrInvalidFraction is returned when a discount fraction outside [0, 1] is
// applied to a price. This is a programming-contract violation, never retried.
var ErrInvalidFraction = errors.New("discount: fraction must be between 0 and 1")

// Policy captures the discount stacking rules. Stacking is additive and then
// capped; cap-then-add would under-apply near the cap and must not be
// reintroduced.
type Policy struct {
	TierRates     map[int]decimal.Decimal
	BulkThreshold int
	BulkRate      decimal.Decimal
	MaxDiscount   decimal.Decimal
}

// DefaultTierRates maps loyalty tiers to their discount fraction. Tiers
// outside the table get no discount rather than an error.
func DefaultTierRates() map[int]decimal.Decimal {
	return map[int]decimal.Decimal{
		0: decimal.Zero,
		1: decimal.RequireFromString("0.05"),
		2: decimal.RequireFromString("0.10"),
		3: decimal.RequireFromString("0.15"),
	}
}

// NewPolicy builds a Policy from the shared pricing constants.
func NewPolicy(rules config.Pricing) Policy {
	return Policy{
		TierRates:     DefaultTierRates(),
		BulkThreshold: rules.BulkThreshold,
		BulkRate:      rules.BulkRate,
		MaxDiscount:   rules.MaxDiscount,
	}
}

// TierRate returns the discount fraction for a loyalty tier.
func (p Policy) TierRate(tier int) decimal.Decimal {
	if rate, ok := p.TierRates[tier]; ok {
		return rate
	}
	return decimal.Zero
}

// Line computes the discount fraction for a single cart line given the line
// quantity and the customer's loyalty tier.
func (p Policy) Line(qty, tier int) decimal.Decimal {
	fraction := p.TierRate(tier)
	if p.BulkThreshold > 0 && qty >= p.BulkThreshold {
		fraction = fraction.Add(p.BulkRate)
	}
	if fraction.GreaterThan(p.MaxDiscount) {
		return p.MaxDiscount
	}
	return fraction
}

// Apply discounts a price by the given fraction and rounds to two decimals.
func Apply(price, fraction decimal.Decimal) (decimal.Decimal, error) {
	if fraction.IsNegative() || fraction.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.Zero, ErrInvalidFraction
	}
	discounted := price.Mul(decimal.NewFromInt(1).Sub(fraction))
	return money.Round2(discounted), nil
}
