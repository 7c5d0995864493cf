package fee

import (
	"context"
	"testing"

	"paylink/internal/models"
	"paylink/internal/services/configstore"
	"paylink/internal/services/transaction"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_Handle(t *testing.T) {
	snap := &configstore.Snapshot{Fee: defaultFeeConfig()}

	t.Run("prices a transfer", func(t *testing.T) {
		req := &transaction.Request{
			Kind:   models.TypeTransfer,
			Amount: decimal.NewFromInt(5000),
			Config: snap,
		}
		require.NoError(t, NewStage().Handle(context.Background(), req))
		assert.True(t, req.Fee.Equal(decimal.NewFromInt(25)), "got fee %s", req.Fee)
	})

	t.Run("non-transfer kinds settle fee free", func(t *testing.T) {
		for _, kind := range []models.TransactionType{models.TypeDeposit, models.TypeWithdraw, models.TypeRefund} {
			req := &transaction.Request{
				Kind:   kind,
				Amount: decimal.NewFromInt(5000),
				Config: snap,
			}
			require.NoError(t, NewStage().Handle(context.Background(), req))
			assert.True(t, req.Fee.IsZero(), "kind %s should carry no fee", kind)
		}
	})
}
