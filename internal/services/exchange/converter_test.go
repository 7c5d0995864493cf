package exchange

import (
	"testing"

	"paylink/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestConverter_ToBase(t *testing.T) {
	c := NewConverter()

	tests := []struct {
		name     string
		amount   string
		currency models.Currency
		want     string
	}{
		{"try is identity", "100", models.CurrencyTRY, "100"},
		{"usd converts at 34.50", "100", models.CurrencyUSD, "3450"},
		{"eur converts at 36.20", "100", models.CurrencyEUR, "3620"},
		{"unknown currency falls back to 1:1", "100", models.Currency("GBP"), "100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ToBase(decimal.RequireFromString(tt.amount), tt.currency)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"want %s, got %s", tt.want, got)
		})
	}
}
