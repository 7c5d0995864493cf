package handlers

import (
	"errors"

	apperrors "paylink/internal/errors"
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/services/transaction"
	"paylink/internal/services/wallet"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionHandler exposes the deposit, withdraw, transfer and refund
// endpoints. Each builds a pipeline request for the authenticated user
// and hands it to the processor.
type TransactionHandler struct {
	processor    *transaction.Processor
	wallets      wallet.Service
	users        repositories.UserRepository
	transactions repositories.TransactionRepository
}

// NewTransactionHandler creates a TransactionHandler.
func NewTransactionHandler(
	processor *transaction.Processor,
	wallets wallet.Service,
	users repositories.UserRepository,
	transactions repositories.TransactionRepository,
) *TransactionHandler {
	return &TransactionHandler{
		processor:    processor,
		wallets:      wallets,
		users:        users,
		transactions: transactions,
	}
}

func (h *TransactionHandler) currentUser(c *fiber.Ctx) (*models.User, error) {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return nil, errors.New("missing claims")
	}
	return h.users.GetByID(c.Context(), claims.UserID)
}

func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, apperrors.ErrInvalidAmount
	}
	return amount, nil
}

// Deposit handles POST /transactions/deposit.
func (h *TransactionHandler) Deposit(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid session")
	}

	var req struct {
		WalletID    string `json:"wallet_id"`
		Amount      string `json:"amount"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	walletID, err := uuid.Parse(req.WalletID)
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return utils.BadRequest(c, "amount must be positive")
	}

	target, err := h.wallets.Get(c.Context(), walletID)
	if err != nil || target.UserID != user.ID {
		return utils.NotFound(c, "wallet not found or does not belong to user")
	}

	record, err := h.processor.Process(c.Context(), &transaction.Request{
		User:         user,
		TargetWallet: target,
		Amount:       amount,
		Kind:         models.TypeDeposit,
		Description:  orDefault(req.Description, "Deposit via API"),
		IPAddress:    c.IP(),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return utils.Success(c, "deposit successful", record)
}

// Withdraw handles POST /transactions/withdraw.
func (h *TransactionHandler) Withdraw(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid session")
	}

	var req struct {
		Currency    string `json:"currency"`
		Amount      string `json:"amount"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return utils.BadRequest(c, "amount must be positive")
	}

	source, err := h.wallets.GetByUserAndCurrency(c.Context(), user.ID, models.Currency(req.Currency))
	if err != nil {
		return utils.NotFound(c, "wallet not found")
	}

	record, err := h.processor.Process(c.Context(), &transaction.Request{
		User:         user,
		SourceWallet: source,
		Amount:       amount,
		Kind:         models.TypeWithdraw,
		Description:  orDefault(req.Description, "Withdrawal via API"),
		IPAddress:    c.IP(),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return utils.Success(c, "withdrawal successful", record)
}

// Transfer handles POST /transactions/transfer.
func (h *TransactionHandler) Transfer(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid session")
	}

	var req struct {
		Currency        string `json:"currency"`
		Amount          string `json:"amount"`
		TargetUserEmail string `json:"target_user_email"`
		Description     string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return utils.BadRequest(c, "amount must be positive")
	}

	source, err := h.wallets.GetByUserAndCurrency(c.Context(), user.ID, models.Currency(req.Currency))
	if err != nil {
		return utils.NotFound(c, "source wallet not found")
	}

	targetUser, err := h.users.GetByEmail(c.Context(), req.TargetUserEmail)
	if err != nil {
		return utils.NotFound(c, "target user not found")
	}
	if targetUser.ID == user.ID {
		return utils.BadRequest(c, "cannot transfer to yourself")
	}

	target, err := h.wallets.GetByUserAndCurrency(c.Context(), targetUser.ID, models.Currency(req.Currency))
	if err != nil {
		return utils.NotFound(c, "target user does not have a wallet for this currency")
	}

	record, err := h.processor.Process(c.Context(), &transaction.Request{
		User:         user,
		SourceWallet: source,
		TargetWallet: target,
		Amount:       amount,
		Kind:         models.TypeTransfer,
		Description:  orDefault(req.Description, "Transfer via API"),
		IPAddress:    c.IP(),
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return utils.Success(c, "transfer successful", record)
}

// Refund handles POST /transactions/:id/refund. The refunded amount is
// credited back to the source wallet of the original transfer and the
// new record links the original transaction.
func (h *TransactionHandler) Refund(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid session")
	}

	originalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid transaction id")
	}

	// The body only carries the optional description and may be absent.
	var req struct {
		Description string `json:"description"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.BadRequest(c, "invalid request body")
		}
	}

	original, err := h.transactions.GetByID(c.Context(), originalID)
	if err != nil {
		return utils.NotFound(c, "transaction not found")
	}
	if original.Type != models.TypeTransfer || original.Status != models.StatusCompleted || original.SourceWalletID == nil {
		return utils.BadRequest(c, "transaction is not refundable")
	}

	// Refunds credit the original sender; only the recipient may issue
	// one.
	target, err := h.wallets.Get(c.Context(), *original.SourceWalletID)
	if err != nil {
		return utils.NotFound(c, "original wallet not found")
	}
	if original.TargetWalletID == nil {
		return utils.BadRequest(c, "transaction is not refundable")
	}
	originalTarget, err := h.wallets.Get(c.Context(), *original.TargetWalletID)
	if err != nil || originalTarget.UserID != user.ID {
		return utils.NotFound(c, "transaction not found")
	}

	record, err := h.processor.Process(c.Context(), &transaction.Request{
		User:                 user,
		TargetWallet:         target,
		Amount:               original.Amount,
		Kind:                 models.TypeRefund,
		Description:          orDefault(req.Description, "Refund via API"),
		IPAddress:            c.IP(),
		RelatedTransactionID: &originalID,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return utils.Success(c, "refund successful", record)
}

// History handles GET /transactions/:walletID.
func (h *TransactionHandler) History(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid session")
	}

	walletID, err := uuid.Parse(c.Params("walletID"))
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}
	w, err := h.wallets.Get(c.Context(), walletID)
	if err != nil || w.UserID != user.ID {
		return utils.NotFound(c, "wallet not found or does not belong to user")
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	txs, err := h.transactions.ListByWallet(c.Context(), walletID, limit, offset)
	if err != nil {
		return utils.InternalError(c, "failed to load transactions")
	}
	return utils.Success(c, "transactions", txs)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
