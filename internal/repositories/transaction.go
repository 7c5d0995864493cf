package repositories

import (
	"context"
	"errors"
	"time"

	"paylink/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// TransferVolume is one committed outbound transfer in its original
// currency, used by the daily limit check.
type TransferVolume struct {
	Amount   decimal.Decimal
	Currency models.Currency
}

// TransactionRepository defines ledger persistence and the aggregate
// queries consumed by the limit and fraud stages.
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*models.Transaction, error)

	// DailyTransfers returns the user's committed outbound transfers
	// since the given instant, with their currencies.
	DailyTransfers(ctx context.Context, userID uuid.UUID, since time.Time) ([]TransferVolume, error)

	// CountDistinctRecipients counts how many different users the given
	// user transferred to since the given instant.
	CountDistinctRecipients(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)

	// ListUserIDsByIP returns the distinct users that originated
	// transactions from the given IP since the given instant.
	ListUserIDsByIP(ctx context.Context, ip string, since time.Time) ([]uuid.UUID, error)
}
