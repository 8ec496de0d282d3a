// Package apperror defines the error taxonomy shared by the services and the HTTP layer.
// Services wrap these sentinels with fmt.Errorf("%w: ...") to attach detail;
// callers match them with errors.Is.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateIdentity  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("could not validate credentials")
	ErrExpiredToken       = errors.New("token has expired")
	ErrNotFound           = errors.New("complaint not found")
	ErrForbidden          = errors.New("not authorized")
	ErrValidation         = errors.New("validation error")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// Validation wraps ErrValidation with a human-readable reason.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Forbidden wraps ErrForbidden with the reason shown to the caller.
func Forbidden(reason string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}
