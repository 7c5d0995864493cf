package repositories

import (
	"context"
	"errors"

	"paylink/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrWalletNotFound  = errors.New("wallet not found")
	ErrDuplicateWallet = errors.New("wallet already exists for this currency")
)

// WalletRepository defines wallet persistence operations. Implementations
// bound to a transaction via WithTx participate in that transaction.
type WalletRepository interface {
	Create(ctx context.Context, wallet *models.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wallet, error)
	GetByUserAndCurrency(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.Wallet, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Wallet, error)

	// GetForUpdate reloads a wallet row under a SELECT ... FOR UPDATE
	// lock. Only meaningful inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*models.Wallet, error)

	// AdjustBalance applies a signed delta to the wallet balance as a
	// single UPDATE expression.
	AdjustBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	UpdateStatus(ctx context.Context, id uuid.UUID, status, reason string) error
}
