package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmountScale(t *testing.T) {
	d, err := ParseAmount("123.45")
	if err != nil {
		t.Fatalf("expected 123.45 to parse, got %v", err)
	}
	if FormatAmount(d) != "123.45" {
		t.Fatalf("round trip broke the value: %s", FormatAmount(d))
	}

	if _, err := ParseAmount("123.456"); err == nil {
		t.Fatalf("more than 2 decimals must be rejected")
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Fatalf("non-numeric input must be rejected")
	}
}

func TestFormatAmountAlwaysTwoDecimals(t *testing.T) {
	d, err := ParseAmount("100")
	if err != nil {
		t.Fatalf("expected 100 to parse, got %v", err)
	}
	if FormatAmount(d) != "100.00" {
		t.Fatalf("expected 100.00, got %s", FormatAmount(d))
	}
}

func TestApplyMultiplierRoundsToScale(t *testing.T) {
	price := decimal.RequireFromString("350000.00")
	multiplier := decimal.RequireFromString("1.125")

	got := ApplyMultiplier(price, multiplier)
	if got.StringFixed(2) != "393750.00" {
		t.Fatalf("expected 393750.00, got %s", got.StringFixed(2))
	}

	// result that would need a third decimal rounds to two
	price = decimal.RequireFromString("100.01")
	multiplier = decimal.RequireFromString("1.005")
	got = ApplyMultiplier(price, multiplier)
	if got.Exponent() < -2 {
		t.Fatalf("result must carry at most 2 decimals, got %s", got)
	}
}
