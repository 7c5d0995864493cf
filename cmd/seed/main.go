// Package main seeds the default business configuration: fee tiers, the
// daily transfer limit and the fraud rule parameters. Existing keys are
// left untouched so operator overrides survive reseeding.
package main

import (
	"context"
	"errors"
	"log"

	"paylink/internal/config"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/services/configstore"
)

var defaults = []models.Configuration{
	{Key: configstore.KeyFeeThresholdLow, Value: "1000", Description: "Upper bound of the low fee tier"},
	{Key: configstore.KeyFeeThresholdMedium, Value: "10000", Description: "Upper bound of the medium fee tier"},
	{Key: configstore.KeyFeeLowFixed, Value: "2.0", Description: "Fixed fee for the low tier"},
	{Key: configstore.KeyFeeMediumRate, Value: "0.005", Description: "Percentage fee for the medium tier"},
	{Key: configstore.KeyFeeHighBaseFee, Value: "2.0", Description: "Base fee for the high tier"},
	{Key: configstore.KeyFeeHighRate, Value: "0.003", Description: "Percentage fee for the high tier overage"},
	{Key: configstore.KeyDailyTransferLimitTRY, Value: "50000", Description: "Daily outbound transfer cap in TRY"},
	{Key: configstore.KeyFraudVelocityWindowMinutes, Value: "60", Description: "Velocity rule lookback window"},
	{Key: configstore.KeyFraudVelocityLimit, Value: "4", Description: "Distinct recipients allowed inside the velocity window"},
	{Key: configstore.KeyFraudNightStartHour, Value: "2", Description: "Night rule window start hour"},
	{Key: configstore.KeyFraudNightEndHour, Value: "6", Description: "Night rule window end hour"},
	{Key: configstore.KeyFraudNightAmountLimit, Value: "5000", Description: "Night rule amount threshold in TRY"},
	{Key: configstore.KeyFraudNewAccountDays, Value: "7", Description: "Account age below which the new account rule applies"},
	{Key: configstore.KeyFraudNewAccountAmountLimit, Value: "10000", Description: "New account rule amount threshold in TRY"},
	{Key: configstore.KeyFraudIPWindowMinutes, Value: "1440", Description: "Shared IP rule lookback window"},
}

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	db, err := repositories.Connect()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	ctx := context.Background()
	repo := repositories.NewConfigurationRepository(db)

	seeded := 0
	for _, cfg := range defaults {
		_, err := repo.GetByKey(ctx, cfg.Key)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrConfigNotFound) {
			log.Fatalf("failed to read configuration %s: %v", cfg.Key, err)
		}
		if err := repo.Upsert(ctx, &cfg); err != nil {
			log.Fatalf("failed to seed configuration %s: %v", cfg.Key, err)
		}
		seeded++
	}

	log.Printf("configuration seed complete: %d inserted, %d already present", seeded, len(defaults)-seeded)
}
