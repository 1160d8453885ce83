// Package money holds the decimal summation and markup rules shared by the
// quote aggregator and the snapshot manager.
package money

import "github.com/shopspring/decimal"

// DefaultPrecision is the number of minor-unit digits used for display.
const DefaultPrecision int32 = 2

var hundred = decimal.NewFromInt(100)

// Sum adds the values exactly.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Round rounds half-up to the given number of fractional digits.
// Amounts here are never negative, so half-away-from-zero equals half-up.
func Round(v decimal.Decimal, precision int32) decimal.Decimal {
	return v.Round(precision)
}

// HasPrecision reports whether v needs no more than precision fractional digits.
func HasPrecision(v decimal.Decimal, precision int32) bool {
	return v.Equal(v.Round(precision))
}

// Markup is the result of applying a percentage surcharge to a base amount.
type Markup struct {
	Base       decimal.Decimal `json:"base"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
	Total      decimal.Decimal `json:"total"`
}

// ApplyMarkup computes amount = round(base * pct / 100) and
// total = round(base + amount). A zero percentage leaves the base untouched.
func ApplyMarkup(base, percentage decimal.Decimal, precision int32) Markup {
	amount := Round(base.Mul(percentage).Div(hundred), precision)
	total := base.Add(amount)
	if !percentage.IsZero() {
		total = Round(total, precision)
	}
	return Markup{
		Base:       base,
		Percentage: percentage,
		Amount:     amount,
		Total:      total,
	}
}
