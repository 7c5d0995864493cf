// Package fraud screens requests against the configured anomaly rules.
// Velocity, night-amount and new-account violations block the source
// wallet and abort the request; the shared-IP rule only raises an audit
// case. Side effects (wallet block, case record) commit in their own
// unit of work before the abort error returns, so they survive the
// settlement rollback and the caller always observes them.
package fraud

import (
	"context"
	"time"

	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/services/exchange"
	"paylink/internal/services/transaction"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Rule identifiers, recorded on SuspiciousActivity rows and tagged onto
// blocking errors.
const (
	RuleVelocity   = "velocity_limit_exceeded"
	RuleNight      = "night_transaction"
	RuleNewAccount = "new_account_large_transaction"
	RuleSharedIP   = "ip_mismatch"
)

const blockedReasonPrefix = "Fraud Detection: "

// HistoryReader is the transaction history the rules consult.
type HistoryReader interface {
	CountDistinctRecipients(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error)
	ListUserIDsByIP(ctx context.Context, ip string, since time.Time) ([]uuid.UUID, error)
}

// WalletBlocker flips a wallet to blocked with a rule-tagged reason.
type WalletBlocker interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, status, reason string) error
}

// CaseSink appends suspicious activity cases.
type CaseSink interface {
	Create(ctx context.Context, activity *models.SuspiciousActivity) error
}

// Engine evaluates the four fraud rules as one pipeline stage.
type Engine struct {
	history   HistoryReader
	wallets   WalletBlocker
	cases     CaseSink
	converter *exchange.Converter
	logger    *zap.Logger
	now       func() time.Time
}

// NewEngine creates the fraud engine.
func NewEngine(history HistoryReader, wallets WalletBlocker, cases CaseSink, converter *exchange.Converter, logger *zap.Logger) *Engine {
	if history == nil {
		panic("history reader is required")
	}
	if wallets == nil {
		panic("wallet blocker is required")
	}
	if cases == nil {
		panic("case sink is required")
	}
	if converter == nil {
		panic("converter is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		history:   history,
		wallets:   wallets,
		cases:     cases,
		converter: converter,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the engine's clock. Test hook for the night and
// new-account rules.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

func (e *Engine) Name() string { return "fraud_check" }

// Handle evaluates every rule against the request. Rules are
// independent: the shared-IP audit still fires even when an earlier
// blocking rule did not.
func (e *Engine) Handle(ctx context.Context, req *transaction.Request) error {
	cfg := req.Config.Fraud
	amountTRY := e.converter.ToBase(req.Amount, req.ActiveWallet().Currency)

	if req.Kind == models.TypeTransfer {
		since := e.now().Add(-time.Duration(cfg.VelocityWindowMinutes) * time.Minute)
		recipients, err := e.history.CountDistinctRecipients(ctx, req.User.ID, since)
		if err != nil {
			return err
		}
		if recipients >= int64(cfg.VelocityLimit) {
			return e.block(ctx, req, RuleVelocity, models.JSON{
				"distinct_recipients": recipients,
				"window_minutes":      cfg.VelocityWindowMinutes,
				"limit":               cfg.VelocityLimit,
			})
		}
	}

	hour := e.now().Hour()
	if inNightWindow(hour, cfg.NightStartHour, cfg.NightEndHour) {
		if amountTRY.GreaterThan(cfg.NightAmountLimit) {
			return e.block(ctx, req, RuleNight, models.JSON{
				"amount_try": amountTRY.String(),
				"hour":       hour,
				"limit_try":  cfg.NightAmountLimit.String(),
			})
		}
	}

	accountAge := e.now().Sub(req.User.CreatedAt)
	if accountAge < time.Duration(cfg.NewAccountDays)*24*time.Hour {
		if amountTRY.GreaterThan(cfg.NewAccountAmountLimit) {
			return e.block(ctx, req, RuleNewAccount, models.JSON{
				"amount_try":       amountTRY.String(),
				"account_age_days": int(accountAge.Hours() / 24),
				"limit_try":        cfg.NewAccountAmountLimit.String(),
			})
		}
	}

	if req.IPAddress != "" {
		since := e.now().Add(-time.Duration(cfg.IPWindowMinutes) * time.Minute)
		userIDs, err := e.history.ListUserIDsByIP(ctx, req.IPAddress, since)
		if err != nil {
			return err
		}
		for _, id := range userIDs {
			if id != req.User.ID {
				e.audit(ctx, req, RuleSharedIP, models.SeverityCritical, models.JSON{
					"ip_address":  req.IPAddress,
					"other_users": len(userIDs) - 1,
				})
				break
			}
		}
	}

	return nil
}

// inNightWindow reports whether hour falls in [start, end), where a
// start after the end means the window wraps midnight (22 to 4 covers
// 22,23,0,1,2,3).
func inNightWindow(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}

// block records the case, blocks the source wallet and returns the
// rule-tagged abort. Both writes happen on the engine's own connection,
// outside the settlement transaction.
func (e *Engine) block(ctx context.Context, req *transaction.Request, rule string, details models.JSON) error {
	e.audit(ctx, req, rule, models.SeverityHigh, details)

	if req.SourceWallet != nil {
		reason := blockedReasonPrefix + rule
		if err := e.wallets.UpdateStatus(ctx, req.SourceWallet.ID, models.WalletStatusBlocked, reason); err != nil {
			e.logger.Error("failed to block wallet",
				zap.String("wallet_id", req.SourceWallet.ID.String()),
				zap.String("rule", rule),
				zap.Error(err),
			)
		} else {
			req.SourceWallet.Status = models.WalletStatusBlocked
			req.SourceWallet.BlockedReason = reason
		}
	}

	return &apperrors.FraudBlockedError{
		Rule:    rule,
		Message: "request rejected, source wallet blocked",
	}
}

func (e *Engine) audit(ctx context.Context, req *transaction.Request, rule, severity string, details models.JSON) {
	activity := &models.SuspiciousActivity{
		UserID:    req.User.ID,
		RuleType:  rule,
		Severity:  severity,
		Status:    models.CasePending,
		RiskScore: models.RiskScoreFor(severity),
		Details:   details,
	}
	if err := e.cases.Create(ctx, activity); err != nil {
		e.logger.Error("failed to record suspicious activity",
			zap.String("rule", rule),
			zap.String("user_id", req.User.ID.String()),
			zap.Error(err),
		)
		return
	}
	e.logger.Warn("suspicious activity detected",
		zap.String("rule", rule),
		zap.String("severity", severity),
		zap.String("user_id", req.User.ID.String()),
	)
}
