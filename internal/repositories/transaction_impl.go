package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paylink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a transaction repository over the
// given database handle.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.WithContext(ctx).First(&tx, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) ListByWallet(ctx context.Context, walletID uuid.UUID, limit, offset int) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Where("source_wallet_id = ? OR target_wallet_id = ?", walletID, walletID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

func (r *transactionRepository) DailyTransfers(ctx context.Context, userID uuid.UUID, since time.Time) ([]TransferVolume, error) {
	var volumes []TransferVolume
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Joins("JOIN wallets source ON source.id = transactions.source_wallet_id").
		Where("source.user_id = ?", userID).
		Where("transactions.type = ?", models.TypeTransfer).
		Where("transactions.status = ?", models.StatusCompleted).
		Where("transactions.created_at >= ?", since).
		Select("transactions.amount AS amount, transactions.currency AS currency").
		Scan(&volumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get daily transfers: %w", err)
	}
	return volumes, nil
}

func (r *transactionRepository) CountDistinctRecipients(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	// Distinct target wallets are not enough: a recipient with TRY and
	// USD wallets still counts once, so go through the target's user_id.
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Joins("JOIN wallets source ON source.id = transactions.source_wallet_id").
		Joins("JOIN wallets target ON target.id = transactions.target_wallet_id").
		Where("source.user_id = ?", userID).
		Where("transactions.type = ?", models.TypeTransfer).
		Where("transactions.created_at >= ?", since).
		Distinct("target.user_id").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count distinct recipients: %w", err)
	}
	return count, nil
}

func (r *transactionRepository) ListUserIDsByIP(ctx context.Context, ip string, since time.Time) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Joins("JOIN wallets source ON source.id = transactions.source_wallet_id").
		Where("transactions.ip_address = ?", ip).
		Where("transactions.created_at >= ?", since).
		Distinct().
		Pluck("source.user_id", &userIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users by ip: %w", err)
	}
	return userIDs, nil
}
