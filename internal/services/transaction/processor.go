package transaction

import (
	"context"
	"fmt"
	"sort"

	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/services/configstore"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProcessorConfig wires the processor dependencies.
type ProcessorConfig struct {
	DB       *gorm.DB
	Pipeline *Pipeline
	Store    SnapshotLoader
	Logger   *zap.Logger
}

// SnapshotLoader loads the per-request configuration snapshot.
type SnapshotLoader interface {
	Snapshot(ctx context.Context) (*configstore.Snapshot, error)
}

// Processor is the ledger: it screens a request through the pipeline and
// then settles it in one atomic unit of work. Settlement locks the
// involved wallet rows (SELECT ... FOR UPDATE, deterministic order),
// re-verifies solvency on the fresh balances, writes exactly one
// transaction record and applies both balance deltas. Either all of that
// commits or none of it does.
type Processor struct {
	db       *gorm.DB
	pipeline *Pipeline
	store    SnapshotLoader
	logger   *zap.Logger
}

// NewProcessor creates the transaction processor.
func NewProcessor(cfg ProcessorConfig) *Processor {
	if cfg.DB == nil {
		panic("db is required")
	}
	if cfg.Pipeline == nil {
		panic("pipeline is required")
	}
	if cfg.Store == nil {
		panic("config store is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Processor{
		db:       cfg.DB,
		pipeline: cfg.Pipeline,
		store:    cfg.Store,
		logger:   cfg.Logger,
	}
}

// Process runs the full pipeline and settles the request. On failure the
// only observable writes are the fraud stage's own audit and block side
// effects, which commit in their own unit of work before the abort
// reaches the caller.
func (p *Processor) Process(ctx context.Context, req *Request) (*models.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := p.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	req.Config = snap
	req.Status = models.StatusPending

	if err := p.pipeline.Run(ctx, req); err != nil {
		return nil, err
	}

	var record *models.Transaction
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallets := repositories.NewWalletRepository(tx)

		if err := p.lockWallets(ctx, wallets, req); err != nil {
			return err
		}

		// The pipeline saw unlocked balances; re-verify on the locked
		// rows so concurrent debits cannot both pass.
		if req.DebitsSource() && req.SourceWallet.IsBlocked() {
			return apperrors.ErrWalletBlocked
		}
		if err := CheckSolvency(req); err != nil {
			return err
		}

		record = p.buildRecord(req)
		if err := repositories.NewTransactionRepository(tx).Create(ctx, record); err != nil {
			return err
		}

		if req.DebitsSource() {
			debit := req.Amount.Add(req.Fee).Neg()
			if err := wallets.AdjustBalance(ctx, req.SourceWallet.ID, debit); err != nil {
				return err
			}
		}
		if req.CreditsTarget() {
			if err := wallets.AdjustBalance(ctx, req.TargetWallet.ID, req.Amount); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info("transaction settled",
		zap.String("transaction_id", record.ID.String()),
		zap.String("kind", string(req.Kind)),
		zap.String("amount", req.Amount.String()),
		zap.String("fee", req.Fee.String()),
		zap.String("currency", string(record.Currency)),
	)
	return record, nil
}

// lockWallets reloads every involved wallet under a row lock, replacing
// the stale request pointers. Wallets are locked in ID order so two
// transfers between the same pair cannot deadlock.
func (p *Processor) lockWallets(ctx context.Context, wallets repositories.WalletRepository, req *Request) error {
	involved := make([]**models.Wallet, 0, 2)
	if req.SourceWallet != nil {
		involved = append(involved, &req.SourceWallet)
	}
	if req.TargetWallet != nil {
		involved = append(involved, &req.TargetWallet)
	}
	sort.Slice(involved, func(i, j int) bool {
		return (*involved[i]).ID.String() < (*involved[j]).ID.String()
	})

	for _, slot := range involved {
		fresh, err := wallets.GetForUpdate(ctx, (*slot).ID)
		if err != nil {
			return fmt.Errorf("failed to lock wallet %s: %w", (*slot).ID, err)
		}
		*slot = fresh
	}
	return nil
}

func (p *Processor) buildRecord(req *Request) *models.Transaction {
	record := &models.Transaction{
		Type:                 req.Kind,
		Amount:               req.Amount,
		Fee:                  req.Fee,
		Currency:             req.ActiveWallet().Currency,
		Status:               models.StatusCompleted,
		Description:          req.Description,
		IPAddress:            req.IPAddress,
		RelatedTransactionID: req.RelatedTransactionID,
	}
	if req.SourceWallet != nil {
		id := req.SourceWallet.ID
		record.SourceWalletID = &id
	}
	if req.TargetWallet != nil {
		id := req.TargetWallet.ID
		record.TargetWalletID = &id
	}
	return record
}
