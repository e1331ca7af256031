// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	validatorLib "github.com/go-playground/validator/v10"

	domainerrors "marketplace/internal/domain/errors"
)

// echoValidator wraps a single validator instance; it is safe for
// concurrent use and caches struct metadata internally.
type echoValidator struct {
	validate *validatorLib.Validate
}

// New builds the request validator installed on the echo server.
func New() *echoValidator {
	return &echoValidator{
		validate: validatorLib.New(validatorLib.WithRequiredStructEnabled()),
	}
}

// Validate checks struct tags on a bound request payload. Failures surface
// as the shared invalid-input error so clients always see one shape.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
