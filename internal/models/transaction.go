package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionType is the kind of money movement a transaction represents.
type TransactionType string

const (
	TypeDeposit  TransactionType = "deposit"
	TypeWithdraw TransactionType = "withdraw"
	TypeTransfer TransactionType = "transfer"
	TypeRefund   TransactionType = "refund"
)

// Valid reports whether the transaction type is known.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDeposit, TypeWithdraw, TypeTransfer, TypeRefund:
		return true
	}
	return false
}

// Transaction statuses
const (
	StatusPending       = "pending"
	StatusCompleted     = "completed"
	StatusFailed        = "failed"
	StatusPendingReview = "pending_review"
	StatusRejected      = "rejected"
)

// Transaction is the append-only ledger record for one processed request.
// SourceWalletID is nil for deposits, TargetWalletID is nil for
// withdrawals; a transfer links both wallets in a single record.
type Transaction struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Type                 TransactionType `gorm:"not null;index:idx_transactions_type_status" json:"type"`
	SourceWalletID       *uuid.UUID      `gorm:"type:uuid;index:idx_transactions_source_created" json:"source_wallet_id,omitempty"`
	TargetWalletID       *uuid.UUID      `gorm:"type:uuid;index:idx_transactions_target_created" json:"target_wallet_id,omitempty"`
	Amount               decimal.Decimal `gorm:"type:numeric(19,4);not null" json:"amount"`
	Fee                  decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"fee"`
	Currency             Currency        `gorm:"type:char(3);not null" json:"currency"`
	Status               string          `gorm:"not null;default:'pending';index:idx_transactions_type_status" json:"status"`
	Description          string          `json:"description,omitempty"`
	IPAddress            string          `json:"ip_address,omitempty"`
	Metadata             JSON            `gorm:"type:jsonb" json:"metadata,omitempty"`
	RelatedTransactionID *uuid.UUID      `gorm:"type:uuid" json:"related_transaction_id,omitempty"`
	PerformedAt          time.Time       `json:"performed_at"`
	CreatedAt            time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.PerformedAt.IsZero() {
		t.PerformedAt = time.Now()
	}
	return nil
}
