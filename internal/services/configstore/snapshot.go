package configstore

import (
	"context"

	"github.com/shopspring/decimal"
)

// Configuration keys understood by the transaction pipeline. Defaults
// apply when a key has no row.
const (
	KeyFeeThresholdLow    = "FEE_THRESHOLD_LOW"
	KeyFeeThresholdMedium = "FEE_THRESHOLD_MEDIUM"
	KeyFeeLowFixed        = "FEE_LOW_FIXED"
	KeyFeeMediumRate      = "FEE_MEDIUM_RATE"
	KeyFeeHighBaseFee     = "FEE_HIGH_BASE_FEE"
	KeyFeeHighRate        = "FEE_HIGH_RATE"

	KeyDailyTransferLimitTRY = "DAILY_TRANSFER_LIMIT_TRY"

	KeyFraudVelocityWindowMinutes = "FRAUD_CHECK_VELOCITY_WINDOW_MINUTES"
	KeyFraudVelocityLimit         = "FRAUD_CHECK_VELOCITY_LIMIT"
	KeyFraudNightStartHour        = "FRAUD_CHECK_NIGHT_START_HOUR"
	KeyFraudNightEndHour          = "FRAUD_CHECK_NIGHT_END_HOUR"
	KeyFraudNightAmountLimit      = "FRAUD_CHECK_NIGHT_AMOUNT_LIMIT"
	KeyFraudNewAccountDays        = "FRAUD_CHECK_NEW_ACCOUNT_DAYS"
	KeyFraudNewAccountAmountLimit = "FRAUD_CHECK_NEW_ACCOUNT_AMOUNT_LIMIT"
	KeyFraudIPWindowMinutes       = "FRAUD_CHECK_IP_WINDOW_MINUTES"
)

// FeeConfig holds the pricing thresholds and rates.
type FeeConfig struct {
	ThresholdLow    decimal.Decimal
	ThresholdMedium decimal.Decimal
	LowFixed        decimal.Decimal
	MediumRate      decimal.Decimal
	HighBaseFee     decimal.Decimal
	HighRate        decimal.Decimal
}

// LimitConfig holds the daily transfer cap in base currency.
type LimitConfig struct {
	DailyTransferLimitTRY decimal.Decimal
}

// FraudConfig holds the fraud rule parameters.
type FraudConfig struct {
	VelocityWindowMinutes int
	VelocityLimit         int
	NightStartHour        int
	NightEndHour          int
	NightAmountLimit      decimal.Decimal
	NewAccountDays        int
	NewAccountAmountLimit decimal.Decimal
	IPWindowMinutes       int
}

// Snapshot is a consistent view of all pipeline configuration, fetched
// once per request and threaded through the stages. Stages never read
// the store directly, so a cache invalidation mid-pipeline cannot make
// two stages disagree.
type Snapshot struct {
	Fee   FeeConfig
	Limit LimitConfig
	Fraud FraudConfig
}

// Snapshot loads every pipeline setting, applying defaults for unset
// keys.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		snap Snapshot
		err  error
	)

	if snap.Fee.ThresholdLow, err = s.GetDecimal(ctx, KeyFeeThresholdLow, decimal.NewFromInt(1000)); err != nil {
		return nil, err
	}
	if snap.Fee.ThresholdMedium, err = s.GetDecimal(ctx, KeyFeeThresholdMedium, decimal.NewFromInt(10000)); err != nil {
		return nil, err
	}
	if snap.Fee.LowFixed, err = s.GetDecimal(ctx, KeyFeeLowFixed, decimal.NewFromFloat(2.0)); err != nil {
		return nil, err
	}
	if snap.Fee.MediumRate, err = s.GetDecimal(ctx, KeyFeeMediumRate, decimal.NewFromFloat(0.005)); err != nil {
		return nil, err
	}
	if snap.Fee.HighBaseFee, err = s.GetDecimal(ctx, KeyFeeHighBaseFee, decimal.NewFromFloat(2.0)); err != nil {
		return nil, err
	}
	if snap.Fee.HighRate, err = s.GetDecimal(ctx, KeyFeeHighRate, decimal.NewFromFloat(0.003)); err != nil {
		return nil, err
	}

	if snap.Limit.DailyTransferLimitTRY, err = s.GetDecimal(ctx, KeyDailyTransferLimitTRY, decimal.NewFromInt(50000)); err != nil {
		return nil, err
	}

	if snap.Fraud.VelocityWindowMinutes, err = s.GetInt(ctx, KeyFraudVelocityWindowMinutes, 60); err != nil {
		return nil, err
	}
	if snap.Fraud.VelocityLimit, err = s.GetInt(ctx, KeyFraudVelocityLimit, 4); err != nil {
		return nil, err
	}
	if snap.Fraud.NightStartHour, err = s.GetInt(ctx, KeyFraudNightStartHour, 2); err != nil {
		return nil, err
	}
	if snap.Fraud.NightEndHour, err = s.GetInt(ctx, KeyFraudNightEndHour, 6); err != nil {
		return nil, err
	}
	if snap.Fraud.NightAmountLimit, err = s.GetDecimal(ctx, KeyFraudNightAmountLimit, decimal.NewFromInt(5000)); err != nil {
		return nil, err
	}
	if snap.Fraud.NewAccountDays, err = s.GetInt(ctx, KeyFraudNewAccountDays, 7); err != nil {
		return nil, err
	}
	if snap.Fraud.NewAccountAmountLimit, err = s.GetDecimal(ctx, KeyFraudNewAccountAmountLimit, decimal.NewFromInt(10000)); err != nil {
		return nil, err
	}
	if snap.Fraud.IPWindowMinutes, err = s.GetInt(ctx, KeyFraudIPWindowMinutes, 1440); err != nil {
		return nil, err
	}

	return &snap, nil
}
