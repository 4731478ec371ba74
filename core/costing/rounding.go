// Package costing - Rounding policy
package costing

import "github.com/shopspring/decimal"

var (
	one  = decimal.NewFromInt(1)
	five = decimal.NewFromInt(5)
)

// RoundToNearestFive normalizes a freelancer fee to a multiple of £5 with
// an upward bias: amounts within £1 of the lower multiple round down,
// everything else rounds up. The £1 threshold is a business rule, not a
// precision artifact (181 -> 180, 182 -> 185).
func RoundToNearestFive(amount decimal.Decimal) decimal.Decimal {
	lower := amount.Div(five).Floor().Mul(five)
	if amount.Sub(lower).LessThanOrEqual(one) {
		return lower
	}
	return lower.Add(five)
}

// RoundToPound rounds a client total to the nearest whole pound.
func RoundToPound(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}
