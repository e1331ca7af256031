package middleware

import (
	"log/slog"
	"net/http"

	domainerrors "marketplace/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Every error
// body has the single shape {"error": "<message>"}.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Typed domain errors carry their status and user-facing message.
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logError(err, c)
		}
		_ = c.JSON(appErr.HTTPCode(), map[string]string{"error": appErr.Message()})

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if text, ok := httpErr.Message.(string); ok {
			message = text
		}
		_ = c.JSON(httpErr.Code, map[string]string{"error": message})

		return
	}

	// Anything untyped is an internal failure; log detail, hide it from the client.
	m.logError(err, c)

	_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": domainerrors.ErrInternalError.Message()})
}

func (m *ErrorMiddleware) logError(err error, c echo.Context) {
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
