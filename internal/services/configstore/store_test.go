package configstore

import (
	"context"
	"testing"

	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConfigRepo struct {
	mock.Mock
}

func (m *mockConfigRepo) GetByKey(ctx context.Context, key string) (*models.Configuration, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Configuration), args.Error(1)
}

func (m *mockConfigRepo) List(ctx context.Context) ([]*models.Configuration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Configuration), args.Error(1)
}

func (m *mockConfigRepo) Upsert(ctx context.Context, cfg *models.Configuration) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *mockConfigRepo) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// The nil cache service is a valid never-hit cache, so these tests
// exercise the store against the repository alone.

func stored(key, value string) *models.Configuration {
	return &models.Configuration{Key: key, Value: value}
}

func TestStore_TypedGetters(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored value", func(t *testing.T) {
		repo := new(mockConfigRepo)
		repo.On("GetByKey", mock.Anything, KeyFraudVelocityLimit).Return(stored(KeyFraudVelocityLimit, "7"), nil)

		store := NewStore(repo, nil, nil)
		got, err := store.GetInt(ctx, KeyFraudVelocityLimit, 4)
		require.NoError(t, err)
		assert.Equal(t, 7, got)
	})

	t.Run("falls back to the default when unset", func(t *testing.T) {
		repo := new(mockConfigRepo)
		repo.On("GetByKey", mock.Anything, mock.Anything).Return(nil, repositories.ErrConfigNotFound)

		store := NewStore(repo, nil, nil)
		got, err := store.GetInt(ctx, KeyFraudVelocityLimit, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, got)
	})

	t.Run("unparsable stored value is a fault, not a default", func(t *testing.T) {
		repo := new(mockConfigRepo)
		repo.On("GetByKey", mock.Anything, mock.Anything).Return(stored(KeyFraudVelocityLimit, "lots"), nil)

		store := NewStore(repo, nil, nil)
		_, err := store.GetInt(ctx, KeyFraudVelocityLimit, 4)
		assert.ErrorIs(t, err, apperrors.ErrConfigurationMissing)
	})

	t.Run("decimal values round-trip exactly", func(t *testing.T) {
		repo := new(mockConfigRepo)
		repo.On("GetByKey", mock.Anything, KeyFeeMediumRate).Return(stored(KeyFeeMediumRate, "0.005"), nil)

		store := NewStore(repo, nil, nil)
		got, err := store.GetDecimal(ctx, KeyFeeMediumRate, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, got.Equal(decimal.RequireFromString("0.005")))
	})
}

func TestStore_Require(t *testing.T) {
	repo := new(mockConfigRepo)
	repo.On("GetByKey", mock.Anything, "MISSING").Return(nil, repositories.ErrConfigNotFound)

	store := NewStore(repo, nil, nil)
	_, err := store.Require(context.Background(), "MISSING")
	assert.ErrorIs(t, err, apperrors.ErrConfigurationMissing)
}

func TestStore_Snapshot_Defaults(t *testing.T) {
	repo := new(mockConfigRepo)
	repo.On("GetByKey", mock.Anything, mock.Anything).Return(nil, repositories.ErrConfigNotFound)

	store := NewStore(repo, nil, nil)
	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)

	assert.True(t, snap.Fee.ThresholdLow.Equal(decimal.NewFromInt(1000)))
	assert.True(t, snap.Fee.ThresholdMedium.Equal(decimal.NewFromInt(10000)))
	assert.True(t, snap.Limit.DailyTransferLimitTRY.Equal(decimal.NewFromInt(50000)))
	assert.Equal(t, 4, snap.Fraud.VelocityLimit)
	assert.Equal(t, 2, snap.Fraud.NightStartHour)
	assert.Equal(t, 6, snap.Fraud.NightEndHour)
	assert.Equal(t, 7, snap.Fraud.NewAccountDays)
	assert.Equal(t, 1440, snap.Fraud.IPWindowMinutes)
}

func TestStore_Snapshot_Overrides(t *testing.T) {
	repo := new(mockConfigRepo)
	repo.On("GetByKey", mock.Anything, KeyDailyTransferLimitTRY).Return(stored(KeyDailyTransferLimitTRY, "75000"), nil)
	repo.On("GetByKey", mock.Anything, mock.Anything).Return(nil, repositories.ErrConfigNotFound)

	store := NewStore(repo, nil, nil)
	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Limit.DailyTransferLimitTRY.Equal(decimal.NewFromInt(75000)))
}

func TestStore_Set(t *testing.T) {
	repo := new(mockConfigRepo)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(cfg *models.Configuration) bool {
		return cfg.Key == KeyFraudVelocityLimit && cfg.Value == "9"
	})).Return(nil)

	store := NewStore(repo, nil, nil)
	require.NoError(t, store.Set(context.Background(), KeyFraudVelocityLimit, "9", "raised for testing"))
	repo.AssertExpectations(t)
}
