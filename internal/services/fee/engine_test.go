package fee

import (
	"testing"

	"paylink/internal/services/configstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultFeeConfig() configstore.FeeConfig {
	return configstore.FeeConfig{
		ThresholdLow:    decimal.NewFromInt(1000),
		ThresholdMedium: decimal.NewFromInt(10000),
		LowFixed:        decimal.NewFromFloat(2.0),
		MediumRate:      decimal.NewFromFloat(0.005),
		HighBaseFee:     decimal.NewFromFloat(2.0),
		HighRate:        decimal.NewFromFloat(0.003),
	}
}

func TestTierFor(t *testing.T) {
	cfg := defaultFeeConfig()

	tests := []struct {
		name   string
		amount string
		want   Tier
	}{
		{"zero", "0", TierLow},
		{"below low threshold", "500", TierLow},
		{"exactly low threshold", "1000", TierLow},
		{"just above low threshold", "1000.01", TierMedium},
		{"mid band", "5000", TierMedium},
		{"exactly medium threshold", "10000", TierMedium},
		{"just above medium threshold", "10000.01", TierHigh},
		{"large amount", "250000", TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			assert.Equal(t, tt.want, TierFor(amount, cfg))
		})
	}
}

func TestCalculate(t *testing.T) {
	cfg := defaultFeeConfig()

	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"low tier fixed fee", "500", "2"},
		{"low tier boundary", "1000", "2"},
		{"medium tier percentage", "5000", "25"},
		{"medium tier boundary", "10000", "50"},
		{"high tier base plus overage", "15000", "44"},
		{"high tier large", "100000", "299"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			got, err := Calculate(amount, cfg)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"want %s, got %s", tt.want, got)
		})
	}
}

func TestCalculate_NegativeAmount(t *testing.T) {
	_, err := Calculate(decimal.NewFromInt(-1), defaultFeeConfig())
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestCalculate_ZeroAmount(t *testing.T) {
	fee, err := Calculate(decimal.Zero, defaultFeeConfig())
	require.NoError(t, err)
	assert.True(t, fee.Equal(decimal.NewFromFloat(2.0)))
}
