package handlers

import (
	"errors"

	"paylink/internal/models"
	"paylink/internal/services/wallet"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler exposes wallet listing and creation endpoints.
type WalletHandler struct {
	service wallet.Service
}

// NewWalletHandler creates a WalletHandler.
func NewWalletHandler(s wallet.Service) *WalletHandler {
	return &WalletHandler{service: s}
}

// List handles GET /wallets.
func (h *WalletHandler) List(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "missing claims")
	}

	wallets, err := h.service.List(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "failed to list wallets")
	}
	return utils.Success(c, "wallets", wallets)
}

// Create handles POST /wallets.
func (h *WalletHandler) Create(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return utils.Unauthorized(c, "missing claims")
	}

	var req struct {
		Currency string `json:"currency"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	w, err := h.service.Create(c.Context(), claims.UserID, models.Currency(req.Currency))
	if err != nil {
		switch {
		case errors.Is(err, wallet.ErrInvalidCurrency):
			return utils.BadRequest(c, "unsupported currency")
		case errors.Is(err, wallet.ErrWalletExists):
			return utils.BadRequest(c, "wallet already exists for this currency")
		default:
			return utils.InternalError(c, "failed to create wallet")
		}
	}
	return utils.Created(c, "wallet created", w)
}
