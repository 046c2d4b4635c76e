package models

import "github.com/shopspring/decimal"

// Monetary columns are fixed-scale decimals; float64 would lose the exact
// two-decimal representation on round-trip.
type (
	Decimal     = decimal.Decimal
	NullDecimal = decimal.NullDecimal
)
