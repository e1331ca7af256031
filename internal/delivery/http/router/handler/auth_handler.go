// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "marketplace/internal/delivery/context"
	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the account lifecycle handlers.
type AuthHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("malformed registration payload")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, output)
}

// Login handles the credential verification request and issues a session token.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("malformed login payload")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}

// ChangePassword handles a password change under re-authentication.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims := deliverycontext.GetPrincipal(c)
	if claims == nil {
		return domainerrors.ErrInvalidToken.WrapMessage("no principal on authenticated route")
	}

	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("malformed change-password payload")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ChangePassword(c.Request().Context(), claims.AccountID, &input); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
