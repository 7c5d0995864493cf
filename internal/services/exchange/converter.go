// Package exchange normalizes amounts into the base currency (TRY) for
// limit and fraud comparisons. Rates are a static table; live feeds are
// deliberately out of scope.
package exchange

import (
	"paylink/internal/models"

	"github.com/shopspring/decimal"
)

// Converter converts supported currencies into TRY.
type Converter struct {
	rates map[models.Currency]decimal.Decimal
}

// NewConverter creates a converter with the static rate table.
func NewConverter() *Converter {
	return &Converter{
		rates: map[models.Currency]decimal.Decimal{
			models.CurrencyTRY: decimal.NewFromInt(1),
			models.CurrencyUSD: decimal.NewFromFloat(34.50),
			models.CurrencyEUR: decimal.NewFromFloat(36.20),
		},
	}
}

// ToBase converts an amount in the given currency to TRY. Unknown
// currencies fall back to a 1:1 rate, matching the lenient behavior of
// the rate table everywhere else in the pipeline.
func (c *Converter) ToBase(amount decimal.Decimal, currency models.Currency) decimal.Decimal {
	rate, ok := c.rates[currency]
	if !ok {
		rate = decimal.NewFromInt(1)
	}
	return amount.Mul(rate)
}
