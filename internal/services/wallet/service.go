// Package wallet manages wallet lifecycle: creation (one per user and
// currency), lookup, and the block/unblock transitions used by fraud
// detection and the admin workflow.
package wallet

import (
	"context"
	"errors"
	"fmt"

	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrWalletExists    = errors.New("wallet already exists for this currency")
)

// Service is the wallet management interface.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.Wallet, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Wallet, error)
	GetByUserAndCurrency(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.Wallet, error)
	List(ctx context.Context, userID uuid.UUID) ([]*models.Wallet, error)
	Block(ctx context.Context, id uuid.UUID, reason string) error
	Unblock(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   repositories.WalletRepository
	logger *zap.Logger
}

// NewService creates a wallet service.
func NewService(repo repositories.WalletRepository, logger *zap.Logger) Service {
	if repo == nil {
		panic("wallet repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{repo: repo, logger: logger}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.Wallet, error) {
	if !currency.Valid() {
		return nil, ErrInvalidCurrency
	}

	wallet := &models.Wallet{
		UserID:   userID,
		Currency: currency,
		Status:   models.WalletStatusActive,
	}
	if err := s.repo.Create(ctx, wallet); err != nil {
		if errors.Is(err, repositories.ErrDuplicateWallet) {
			return nil, ErrWalletExists
		}
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	s.logger.Info("wallet created",
		zap.String("wallet_id", wallet.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("currency", string(currency)),
	)
	return wallet, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Wallet, error) {
	wallet, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

func (s *service) GetByUserAndCurrency(ctx context.Context, userID uuid.UUID, currency models.Currency) (*models.Wallet, error) {
	wallet, err := s.repo.GetByUserAndCurrency(ctx, userID, currency)
	if err != nil {
		if errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, apperrors.ErrWalletNotFound
		}
		return nil, err
	}
	return wallet, nil
}

func (s *service) List(ctx context.Context, userID uuid.UUID) ([]*models.Wallet, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Block(ctx context.Context, id uuid.UUID, reason string) error {
	if err := s.repo.UpdateStatus(ctx, id, models.WalletStatusBlocked, reason); err != nil {
		return err
	}
	s.logger.Warn("wallet blocked", zap.String("wallet_id", id.String()), zap.String("reason", reason))
	return nil
}

func (s *service) Unblock(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.UpdateStatus(ctx, id, models.WalletStatusActive, ""); err != nil {
		return err
	}
	s.logger.Info("wallet unblocked", zap.String("wallet_id", id.String()))
	return nil
}
