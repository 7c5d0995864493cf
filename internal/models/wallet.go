package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Currency is one of the supported wallet currencies.
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Valid reports whether the currency is supported.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyTRY, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Wallet statuses
const (
	WalletStatusActive  = "active"
	WalletStatusBlocked = "blocked"
)

// Wallet holds a single-currency balance for a user. A user has at most
// one wallet per currency; a blocked wallet cannot be the source of a
// debit until it is manually unblocked.
type Wallet struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_wallets_user_currency" json:"user_id"`
	Currency      Currency        `gorm:"type:char(3);not null;uniqueIndex:idx_wallets_user_currency" json:"currency"`
	Balance       decimal.Decimal `gorm:"type:numeric(19,4);not null;default:0" json:"balance"`
	Status        string          `gorm:"not null;default:'active';index:idx_wallets_user_status" json:"status"`
	BlockedReason string          `json:"blocked_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Status == "" {
		w.Status = WalletStatusActive
	}
	return nil
}

// IsBlocked reports whether the wallet is blocked.
func (w *Wallet) IsBlocked() bool {
	return w.Status == WalletStatusBlocked
}
