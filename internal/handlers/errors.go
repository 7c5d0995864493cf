package handlers

import (
	"errors"

	apperrors "paylink/internal/errors"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondDomainError maps a pipeline error to an HTTP response. Fraud
// blocks and limit rejections are client-visible 4xx responses; a
// missing configuration value is a server fault.
func respondDomainError(c *fiber.Ctx, err error) error {
	var fraudErr *apperrors.FraudBlockedError
	if errors.As(err, &fraudErr) {
		return utils.Error(c, fiber.StatusForbidden, fraudErr.Error())
	}

	switch {
	case errors.Is(err, apperrors.ErrWalletNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, apperrors.ErrConfigurationMissing):
		return utils.InternalError(c, err.Error())
	case errors.Is(err, apperrors.ErrInsufficientBalance),
		errors.Is(err, apperrors.ErrTransferExceedsLimit),
		errors.Is(err, apperrors.ErrDailyLimitExceeded),
		errors.Is(err, apperrors.ErrWalletBlocked),
		errors.Is(err, apperrors.ErrSelfTransfer),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidRequest):
		return utils.BadRequest(c, err.Error())
	default:
		return utils.InternalError(c, "transaction failed")
	}
}
