package transaction

import (
	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/services/configstore"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request is the mutable pipeline context for one money movement. It is
// built per call, transformed by the stages in order, and discarded once
// the ledger record is committed.
type Request struct {
	User         *models.User
	SourceWallet *models.Wallet
	TargetWallet *models.Wallet
	Amount       decimal.Decimal
	Kind         models.TransactionType
	Fee          decimal.Decimal
	Status       string
	Description  string
	IPAddress    string

	// RelatedTransactionID links a refund back to the original record.
	RelatedTransactionID *uuid.UUID

	// Config is the per-request configuration snapshot, loaded once
	// before the first stage runs.
	Config *configstore.Snapshot
}

// ActiveWallet is the wallet whose currency the ledger record carries:
// the source when one exists, otherwise the target.
func (r *Request) ActiveWallet() *models.Wallet {
	if r.SourceWallet != nil {
		return r.SourceWallet
	}
	return r.TargetWallet
}

// DebitsSource reports whether this kind deducts amount+fee from the
// source wallet.
func (r *Request) DebitsSource() bool {
	return r.Kind == models.TypeWithdraw || r.Kind == models.TypeTransfer
}

// CreditsTarget reports whether this kind credits the amount to the
// target wallet.
func (r *Request) CreditsTarget() bool {
	return r.Kind == models.TypeDeposit || r.Kind == models.TypeTransfer || r.Kind == models.TypeRefund
}

// Validate enforces the request shape invariants before any stage runs.
func (r *Request) Validate() error {
	if r.User == nil {
		return apperrors.ErrInvalidRequest
	}
	if !r.Kind.Valid() {
		return apperrors.ErrInvalidRequest
	}
	if !r.Amount.IsPositive() {
		return apperrors.ErrInvalidAmount
	}

	switch r.Kind {
	case models.TypeDeposit, models.TypeRefund:
		if r.TargetWallet == nil || r.SourceWallet != nil {
			return apperrors.ErrInvalidRequest
		}
	case models.TypeWithdraw:
		if r.SourceWallet == nil || r.TargetWallet != nil {
			return apperrors.ErrInvalidRequest
		}
	case models.TypeTransfer:
		if r.SourceWallet == nil || r.TargetWallet == nil {
			return apperrors.ErrInvalidRequest
		}
		if r.SourceWallet.ID == r.TargetWallet.ID {
			return apperrors.ErrSelfTransfer
		}
	}

	if r.DebitsSource() && r.SourceWallet.IsBlocked() {
		return apperrors.ErrWalletBlocked
	}
	return nil
}
