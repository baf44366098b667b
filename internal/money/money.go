package money

import "github.com/shopspring/decimal"

// Round2 rounds a monetary amount to two decimal places, half away from zero.
// Line totals are rounded with this before they are summed; callers must not
// reorder that sequence.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat converts a float amount into a decimal value.
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// MustParse converts a decimal string into a value, panicking on malformed
// input. Intended for constants and test fixtures.
func MustParse(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Zero is the zero monetary amount.
var Zero = decimal.Zero
