package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/incassopro/incasso-api/internal/application/auth"
	"github.com/incassopro/incasso-api/internal/application/dto"
	"github.com/incassopro/incasso-api/internal/domain"
)

// AuthHandler handles registration, login and account deletion.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler builds the auth handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "username, email"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if resp := parseBody(c, &in); resp != nil {
		return resp
	}
	out, err := h.uc.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Log in by username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if resp := parseBody(c, &in); resp != nil {
		return resp
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown usernames read as bad credentials, not as a missing resource.
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid credentials"})
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteAccount godoc
// @Summary      Delete the authenticated account
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auth/account [delete]
func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.uc.DeleteAccount(c.UserContext(), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
