// Package fee prices a transaction into one of three configurable
// amount tiers. Pricing is a pure function over a config snapshot; the
// tier is a tagged value rather than a polymorphic strategy object.
package fee

import (
	"errors"

	"paylink/internal/services/configstore"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount signals a programming contract violation: callers
// must validate user input before pricing.
var ErrNegativeAmount = errors.New("fee: amount cannot be negative")

// Tier is the amount band a transaction falls into.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

// TierFor selects the amount band using the snapshot thresholds. Both
// boundaries are inclusive on the lower band.
func TierFor(amount decimal.Decimal, cfg configstore.FeeConfig) Tier {
	switch {
	case amount.LessThanOrEqual(cfg.ThresholdLow):
		return TierLow
	case amount.LessThanOrEqual(cfg.ThresholdMedium):
		return TierMedium
	default:
		return TierHigh
	}
}

// Calculate prices an amount:
//
//	low tier:    fixed fee
//	medium tier: amount * rate
//	high tier:   base + (amount - lowThreshold) * rate
func Calculate(amount decimal.Decimal, cfg configstore.FeeConfig) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}

	switch TierFor(amount, cfg) {
	case TierLow:
		return cfg.LowFixed, nil
	case TierMedium:
		return amount.Mul(cfg.MediumRate), nil
	default:
		remainder := amount.Sub(cfg.ThresholdLow)
		return cfg.HighBaseFee.Add(remainder.Mul(cfg.HighRate)), nil
	}
}
