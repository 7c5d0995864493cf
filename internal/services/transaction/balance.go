package transaction

import (
	"context"

	apperrors "paylink/internal/errors"
)

// CheckSolvency verifies that the source wallet covers amount plus fee
// for debiting kinds. Deposits and refunds pass unconditionally. The
// processor re-runs this check on the row-locked wallet before commit,
// so the pipeline invocation only gives an early answer without lock
// contention.
func CheckSolvency(req *Request) error {
	if !req.DebitsSource() {
		return nil
	}
	if req.SourceWallet == nil {
		return apperrors.ErrInvalidRequest
	}
	required := req.Amount.Add(req.Fee)
	if req.SourceWallet.Balance.LessThan(required) {
		return apperrors.ErrInsufficientBalance
	}
	return nil
}

// BalanceStage is the final pipeline gate before settlement.
type BalanceStage struct{}

// NewBalanceStage creates the solvency stage.
func NewBalanceStage() BalanceStage { return BalanceStage{} }

func (BalanceStage) Name() string { return "check_balance" }

func (BalanceStage) Handle(_ context.Context, req *Request) error {
	return CheckSolvency(req)
}
