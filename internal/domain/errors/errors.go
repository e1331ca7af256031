// Package errors defines the typed domain errors of the platform.
// Every error carries the HTTP status and the user-facing message the
// boundary layer must emit; internal detail never reaches the client.
package errors

import (
	"net/http"

	"marketplace/internal/errors"
)

// AppError is the interface all typed domain errors implement.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-facing error message
}

// BaseError is the standard AppError implementation.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context for logs. The
// user-facing message is unchanged.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-facing error message.
func (e *BaseError) Message() string {
	return e.message
}

// Predefined error types. Messages are part of the API contract and match
// what clients already display.
var (
	// Registration and login.
	ErrDuplicateEmail = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_EMAIL",
		"Email already registered",
	)

	// Deliberately identical wording for unknown email and wrong password,
	// so the two cases cannot be told apart by a caller.
	ErrInvalidCredentials = NewBaseError(
		http.StatusBadRequest,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
	)

	ErrPendingApproval = NewBaseError(
		http.StatusForbidden,
		"PENDING_APPROVAL",
		"Your account is pending admin approval.",
	)

	// Token and access gating.
	ErrMissingToken = NewBaseError(
		http.StatusUnauthorized,
		"MISSING_TOKEN",
		"No token provided",
	)

	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid token",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Forbidden",
	)

	ErrEmailMismatch = NewBaseError(
		http.StatusForbidden,
		"EMAIL_MISMATCH",
		"Email does not match the authenticated account",
	)

	// Input and lookups.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"User not found",
	)

	ErrNoFile = NewBaseError(
		http.StatusBadRequest,
		"NO_FILE",
		"No file uploaded",
	)

	// Catch-all; the boundary layer uses it for anything unexpected.
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Something went wrong",
	)
)

// DatabaseExecuteError wraps an unexpected store failure while keeping the
// client-facing message generic.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, e.details).Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-facing error message.
func (e *DatabaseExecuteError) Message() string {
	return "Something went wrong"
}
