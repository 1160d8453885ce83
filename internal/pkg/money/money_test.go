package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().IsZero())
	assert.True(t, d("0.3").Equal(Sum(d("0.1"), d("0.1"), d("0.1"))))
}

func TestApplyMarkup(t *testing.T) {
	cases := []struct {
		name       string
		base       string
		percentage string
		amount     string
		total      string
	}{
		{name: "ten percent", base: "18000", percentage: "10", amount: "1800", total: "19800"},
		{name: "zero", base: "18000", percentage: "0", amount: "0", total: "18000"},
		{name: "half up", base: "10.05", percentage: "5", amount: "0.50", total: "10.55"},
		{name: "fractional percent", base: "333.33", percentage: "12.5", amount: "41.67", total: "375"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := ApplyMarkup(d(tc.base), d(tc.percentage), DefaultPrecision)
			assert.True(t, d(tc.amount).Equal(m.Amount), "amount %s", m.Amount)
			assert.True(t, d(tc.total).Equal(m.Total), "total %s", m.Total)
		})
	}
}

func TestApplyMarkupZeroKeepsBaseExactly(t *testing.T) {
	base := d("1234.5678")
	m := ApplyMarkup(base, decimal.Zero, DefaultPrecision)
	assert.True(t, base.Equal(m.Total))
}

func TestHasPrecision(t *testing.T) {
	assert.True(t, HasPrecision(d("4000.50"), 2))
	assert.True(t, HasPrecision(d("4000.500"), 2))
	assert.False(t, HasPrecision(d("4000.505"), 2))
}
