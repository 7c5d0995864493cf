//go:build integration

package transaction

import (
	"context"
	"sync"
	"testing"

	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/services/configstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Needs a reachable PostgreSQL (DB_HOST etc., see repositories.Connect).
// Run with: go test -tags integration ./internal/services/transaction/

func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repositories.Connect()
	if err != nil {
		t.Skipf("database unavailable: %v", err)
	}
	return db
}

func seedWallet(t *testing.T, db *gorm.DB, balance decimal.Decimal) (*models.User, *models.Wallet) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{
		Name:     "Concurrent Test",
		Email:    uuid.NewString() + "@test.local",
		Password: "irrelevant",
	}
	require.NoError(t, repositories.NewUserRepository(db).Create(ctx, user))

	wallet := &models.Wallet{
		UserID:   user.ID,
		Currency: models.CurrencyTRY,
		Balance:  balance,
		Status:   models.WalletStatusActive,
	}
	require.NoError(t, repositories.NewWalletRepository(db).Create(ctx, wallet))
	return user, wallet
}

// Ten simultaneous withdrawals of 30 against a balance of 100: exactly
// three may settle, the rest fail on the re-checked, row-locked balance.
func TestProcessor_ConcurrentWithdrawals(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()

	user, wallet := seedWallet(t, db, decimal.NewFromInt(100))

	store := configstore.NewStore(repositories.NewConfigurationRepository(db), nil, nil)
	processor := NewProcessor(ProcessorConfig{
		DB:       db,
		Pipeline: NewPipeline(nil, NewBalanceStage()),
		Store:    store,
	})

	const workers = 10
	amount := decimal.NewFromInt(30)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := *wallet
			_, err := processor.Process(ctx, &Request{
				User:         user,
				SourceWallet: &w,
				Amount:       amount,
				Kind:         models.TypeWithdraw,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, err)
			} else {
				succeeded++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, succeeded)
	for _, err := range failures {
		assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)
	}

	// Settlement is all or nothing: the ledger record count matches the
	// settled withdrawals and the final balance reflects exactly those.
	fresh, err := repositories.NewWalletRepository(db).GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Balance.Equal(decimal.NewFromInt(10)),
		"final balance %s", fresh.Balance)

	var records int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("source_wallet_id = ?", wallet.ID).
		Count(&records).Error)
	assert.EqualValues(t, 3, records)
}

// A transfer that fails inside the settlement transaction must leave no
// record and no balance change behind.
func TestProcessor_SettlementIsAtomic(t *testing.T) {
	db := integrationDB(t)
	ctx := context.Background()

	user, source := seedWallet(t, db, decimal.NewFromInt(100))

	store := configstore.NewStore(repositories.NewConfigurationRepository(db), nil, nil)
	processor := NewProcessor(ProcessorConfig{
		DB:       db,
		Pipeline: NewPipeline(nil, NewBalanceStage()),
		Store:    store,
	})

	// Point the target at a row that does not exist so settlement fails
	// while locking, inside the open transaction.
	missing := &models.Wallet{
		ID:       uuid.New(),
		Currency: models.CurrencyTRY,
		Status:   models.WalletStatusActive,
	}

	_, err := processor.Process(ctx, &Request{
		User:         user,
		SourceWallet: source,
		TargetWallet: missing,
		Amount:       decimal.NewFromInt(40),
		Kind:         models.TypeTransfer,
	})
	require.Error(t, err)

	fresh, err := repositories.NewWalletRepository(db).GetByID(ctx, source.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Balance.Equal(decimal.NewFromInt(100)),
		"debit must roll back, balance %s", fresh.Balance)

	var records int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("source_wallet_id = ?", source.ID).
		Count(&records).Error)
	assert.Zero(t, records)
}
