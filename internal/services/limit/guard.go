// Package limit enforces the per-user daily cap on outbound transfer
// volume, normalized to the base currency. The window is the calendar
// day, not a rolling 24 hours.
package limit

import (
	"context"
	"time"

	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/services/exchange"
	"paylink/internal/services/transaction"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HistoryReader is the slice of transaction history the guard needs.
type HistoryReader interface {
	DailyTransfers(ctx context.Context, userID uuid.UUID, since time.Time) ([]repositories.TransferVolume, error)
}

// Guard is the daily-limit pipeline stage. The daily sum it computes is
// best effort under concurrency; the serialized solvency gate remains
// the authoritative protection for balances.
type Guard struct {
	history   HistoryReader
	converter *exchange.Converter
	now       func() time.Time
}

// NewGuard creates a daily limit guard.
func NewGuard(history HistoryReader, converter *exchange.Converter) *Guard {
	if history == nil {
		panic("history reader is required")
	}
	if converter == nil {
		panic("converter is required")
	}
	return &Guard{history: history, converter: converter, now: time.Now}
}

// WithClock overrides the guard's clock. Test hook.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

func (g *Guard) Name() string { return "check_daily_limit" }

// Handle rejects a transfer when it alone exceeds the daily cap, or when
// it plus the user's same-day outbound transfer volume does. Sums that
// land exactly on the cap are allowed.
func (g *Guard) Handle(ctx context.Context, req *transaction.Request) error {
	if req.Kind != models.TypeTransfer {
		return nil
	}

	capTRY := req.Config.Limit.DailyTransferLimitTRY
	current := g.converter.ToBase(req.Amount, req.SourceWallet.Currency)
	if current.GreaterThan(capTRY) {
		return apperrors.ErrTransferExceedsLimit
	}

	volumes, err := g.history.DailyTransfers(ctx, req.User.ID, startOfDay(g.now()))
	if err != nil {
		return err
	}

	total := decimal.Zero
	for _, v := range volumes {
		total = total.Add(g.converter.ToBase(v.Amount, v.Currency))
	}
	if total.Add(current).GreaterThan(capTRY) {
		return apperrors.ErrDailyLimitExceeded
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
