package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	domainerrors "marketplace/internal/domain/errors"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler holds dependencies for the admin-only handlers.
type AdminHandler struct {
	uc     usecase.AdminUsecase
	logger *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		uc:     uc,
		logger: logger,
	}
}

// Overview returns the dashboard aggregate counts.
func (h *AdminHandler) Overview(c echo.Context) error {
	output, err := h.uc.Overview(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}

// ListUsers returns one page of the account directory.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	// Unparseable paging values fall back to defaults rather than erroring.
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	output, err := h.uc.ListUsers(c.Request().Context(), &usecase.ListUsersInput{
		Page:     page,
		PageSize: pageSize,
		Search:   c.QueryParam("q"),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}

// PatchUser updates role and/or status of any account.
func (h *AdminHandler) PatchUser(c echo.Context) error {
	accountID, err := parseAccountID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input usecase.PatchUserInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("malformed user patch payload")
	}

	if err := h.uc.PatchUser(c.Request().Context(), accountID, &input); err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User updated"})
}

// ListSellers returns the seller approval queue, filtered by status.
func (h *AdminHandler) ListSellers(c echo.Context) error {
	rows, err := h.uc.ListSellers(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]any{"rows": rows})
}

// DecideSeller applies an approve or reject decision to a seller application.
func (h *AdminHandler) DecideSeller(c echo.Context) error {
	accountID, err := parseAccountID(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var input struct {
		Action string `json:"action"`
	}
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("malformed seller decision payload")
	}

	message, err := h.uc.DecideSeller(c.Request().Context(), accountID, input.Action)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

func parseAccountID(c echo.Context) (int64, error) {
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domainerrors.ErrValidationFailed.WrapMessage("account id must be numeric")
	}

	return accountID, nil
}
