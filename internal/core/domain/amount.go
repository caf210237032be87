package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits every balance, fee and delta
// is rounded to before it is compared or persisted.
const Precision int32 = 8

// Round applies the fixed-precision rule to an amount.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// FormatAmount renders an amount with exactly Precision fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(Precision)
}

// ParseAmount parses a decimal string and rounds it to Precision.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return Round(d), nil
}

// NormalizePositive rounds amount and reports whether it is still strictly positive.
func NormalizePositive(amount decimal.Decimal) (decimal.Decimal, bool) {
	rounded := Round(amount)
	return rounded, rounded.IsPositive()
}
