package handlers

import (
	"paylink/internal/models"
	"paylink/internal/repositories"
	"paylink/internal/services/configstore"
	"paylink/internal/services/wallet"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AdminHandler exposes the case resolution and configuration endpoints.
type AdminHandler struct {
	cases   repositories.SuspiciousActivityRepository
	wallets wallet.Service
	configs *configstore.Store
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(cases repositories.SuspiciousActivityRepository, wallets wallet.Service, configs *configstore.Store) *AdminHandler {
	return &AdminHandler{cases: cases, wallets: wallets, configs: configs}
}

// ListCases handles GET /admin/suspicious-activities.
func (h *AdminHandler) ListCases(c *fiber.Ctx) error {
	status := c.Query("status")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	cases, err := h.cases.List(c.Context(), status, limit, offset)
	if err != nil {
		return utils.InternalError(c, "failed to list cases")
	}
	return utils.Success(c, "suspicious activities", cases)
}

// ResolveCase handles PATCH /admin/suspicious-activities/:id.
func (h *AdminHandler) ResolveCase(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid case id")
	}

	var req struct {
		Status    string `json:"status"`
		AdminNote string `json:"admin_note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	switch req.Status {
	case models.CaseInvestigating, models.CaseResolved, models.CaseFalsePositive:
	default:
		return utils.BadRequest(c, "invalid case status")
	}

	if err := h.cases.Resolve(c.Context(), id, req.Status, req.AdminNote); err != nil {
		return utils.NotFound(c, "case not found")
	}
	return utils.Success(c, "case updated", nil)
}

// UnblockWallet handles POST /admin/wallets/:id/unblock.
func (h *AdminHandler) UnblockWallet(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequest(c, "invalid wallet id")
	}
	if err := h.wallets.Unblock(c.Context(), id); err != nil {
		return utils.NotFound(c, "wallet not found")
	}
	return utils.Success(c, "wallet unblocked", nil)
}

// ListConfigurations handles GET /admin/configurations.
func (h *AdminHandler) ListConfigurations(c *fiber.Ctx) error {
	cfgs, err := h.configs.List(c.Context())
	if err != nil {
		return utils.InternalError(c, "failed to list configurations")
	}
	return utils.Success(c, "configurations", cfgs)
}

// SetConfiguration handles PUT /admin/configurations/:key.
func (h *AdminHandler) SetConfiguration(c *fiber.Ctx) error {
	key := c.Params("key")
	var req struct {
		Value       string `json:"value"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil || req.Value == "" {
		return utils.BadRequest(c, "invalid request body")
	}

	if err := h.configs.Set(c.Context(), key, req.Value, req.Description); err != nil {
		return utils.InternalError(c, "failed to update configuration")
	}
	return utils.Success(c, "configuration updated", nil)
}
