// Package handlers contains the thin fiber HTTP handlers. They parse
// requests, call into the service layer and map domain errors onto HTTP
// statuses; all business decisions live in the services.
package handlers

import (
	"errors"

	"paylink/internal/services/auth"
	"paylink/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	service auth.Service
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(s auth.Service) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		return utils.BadRequest(c, "name, email and a password of at least 8 characters are required")
	}

	user, err := h.service.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return utils.BadRequest(c, "the email has already been taken")
		}
		return utils.InternalError(c, "registration failed")
	}
	return utils.Created(c, "user registered successfully", user)
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}

	token, user, err := h.service.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "invalid credentials")
		}
		return utils.InternalError(c, "login failed")
	}
	return utils.Success(c, "login successful", fiber.Map{"token": token, "user": user})
}
