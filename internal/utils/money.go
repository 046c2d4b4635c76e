package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a monetary string into a decimal with at most two
// decimal places. Amount columns are DECIMAL(10,2); more precision would be
// silently truncated by the database, so reject it up front.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("jumlah tidak valid: %q", s)
	}
	if d.Exponent() < -2 {
		return decimal.Decimal{}, fmt.Errorf("jumlah maksimal 2 angka desimal: %q", s)
	}
	return d, nil
}

// FormatAmount renders the canonical two-decimal form (123.45, never 123.450).
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ApplyMultiplier multiplies price by a DECIMAL(5,3) multiplier and rounds
// half-up back to the two-decimal amount scale.
func ApplyMultiplier(price, multiplier decimal.Decimal) decimal.Decimal {
	return price.Mul(multiplier).Round(2)
}

// ValidCurrency checks the 3-letter uppercase code shape (ISO 4217 style).
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
