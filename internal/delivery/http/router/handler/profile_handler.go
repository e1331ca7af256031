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

// ProfileHandler holds dependencies for the self-service profile handlers.
type ProfileHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetProfile returns the caller's own profile, shaped by their role.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	claims := deliverycontext.GetPrincipal(c)
	if claims == nil {
		return domainerrors.ErrInvalidToken.WrapMessage("no principal on authenticated route")
	}

	output, err := h.uc.GetProfile(c.Request().Context(), claims.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, output)
}

// UpdateProfile applies a partial update to the caller's own profile and
// returns the updated view.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	claims := deliverycontext.GetPrincipal(c)
	if claims == nil {
		return domainerrors.ErrInvalidToken.WrapMessage("no principal on authenticated route")
	}

	var input usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("malformed profile payload")
	}

	output, err := h.uc.UpdateProfile(c.Request().Context(), claims.AccountID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": "Profile updated",
		"profile": output.Profile,
	})
}

// UploadAvatar stores the multipart image under the "avatar" field and
// persists its URL on the caller's account. The URL is returned under both
// keys older and newer clients read.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	claims := deliverycontext.GetPrincipal(c)
	if claims == nil {
		return domainerrors.ErrInvalidToken.WrapMessage("no principal on authenticated route")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return domainerrors.ErrNoFile.WrapMessage("missing avatar form field")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded avatar")
	}
	defer file.Close()

	url, err := h.uc.UploadAvatar(c.Request().Context(), claims.AccountID, &usecase.AvatarUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":   "Avatar uploaded",
		"url":       url,
		"avatarUrl": url,
	})
}
