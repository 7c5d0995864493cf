package limit

import (
	"context"
	"testing"
	"time"

	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/services/configstore"
	"paylink/internal/services/exchange"
	"paylink/internal/services/transaction"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockHistory struct {
	mock.Mock
}

func (m *mockHistory) DailyTransfers(ctx context.Context, userID uuid.UUID, since time.Time) ([]repositories.TransferVolume, error) {
	args := m.Called(ctx, userID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.TransferVolume), args.Error(1)
}

func limitRequest(amount string) *transaction.Request {
	return &transaction.Request{
		User:         &models.User{ID: uuid.New()},
		SourceWallet: &models.Wallet{ID: uuid.New(), Currency: models.CurrencyTRY},
		TargetWallet: &models.Wallet{ID: uuid.New(), Currency: models.CurrencyTRY},
		Amount:       decimal.RequireFromString(amount),
		Kind:         models.TypeTransfer,
		Config: &configstore.Snapshot{
			Limit: configstore.LimitConfig{DailyTransferLimitTRY: decimal.NewFromInt(50000)},
		},
	}
}

func TestGuard_Handle(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		history []repositories.TransferVolume
		wantErr error
	}{
		{
			name:    "single transfer exceeding the cap",
			amount:  "50000.01",
			wantErr: apperrors.ErrTransferExceedsLimit,
		},
		{
			name:    "exactly the cap with no history",
			amount:  "50000",
			history: nil,
		},
		{
			name:   "cumulative volume lands exactly on the cap",
			amount: "20000",
			history: []repositories.TransferVolume{
				{Amount: decimal.NewFromInt(30000), Currency: models.CurrencyTRY},
			},
		},
		{
			name:   "cumulative volume exceeds the cap",
			amount: "20000.01",
			history: []repositories.TransferVolume{
				{Amount: decimal.NewFromInt(30000), Currency: models.CurrencyTRY},
			},
			wantErr: apperrors.ErrDailyLimitExceeded,
		},
		{
			name:   "foreign currency history counts at its converted value",
			amount: "20000",
			history: []repositories.TransferVolume{
				// 1000 USD = 34500 TRY, so 34500 + 20000 > 50000.
				{Amount: decimal.NewFromInt(1000), Currency: models.CurrencyUSD},
			},
			wantErr: apperrors.ErrDailyLimitExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := new(mockHistory)
			history.On("DailyTransfers", mock.Anything, mock.Anything, mock.Anything).
				Return(tt.history, nil).Maybe()

			guard := NewGuard(history, exchange.NewConverter())
			err := guard.Handle(context.Background(), limitRequest(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGuard_Handle_IgnoresNonTransfers(t *testing.T) {
	history := new(mockHistory)
	guard := NewGuard(history, exchange.NewConverter())

	req := limitRequest("999999")
	req.Kind = models.TypeDeposit

	require.NoError(t, guard.Handle(context.Background(), req))
	history.AssertNotCalled(t, "DailyTransfers")
}

func TestGuard_Handle_WindowIsCalendarDay(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, loc)
	midnight := time.Date(2025, 6, 15, 0, 0, 0, 0, loc)

	history := new(mockHistory)
	history.On("DailyTransfers", mock.Anything, mock.Anything, midnight).
		Return([]repositories.TransferVolume(nil), nil)

	guard := NewGuard(history, exchange.NewConverter()).WithClock(func() time.Time { return now })
	require.NoError(t, guard.Handle(context.Background(), limitRequest("100")))
	history.AssertExpectations(t)
}

func TestGuard_Handle_HistoryError(t *testing.T) {
	history := new(mockHistory)
	history.On("DailyTransfers", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	guard := NewGuard(history, exchange.NewConverter())
	err := guard.Handle(context.Background(), limitRequest("100"))
	assert.ErrorIs(t, err, assert.AnError)
}
