// Package common defines shared constants and sentinel errors used across
// the server and client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrPersistence   = errors.New("persistence error")

	// Service-level errors.
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotConfigured      = errors.New("not configured")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// FieldError is a validation failure carrying a message that is safe to show
// to the end user. It matches ErrValidation via errors.Is.
type FieldError struct {
	Message string
}

func (e *FieldError) Error() string { return e.Message }

// Is reports whether target is ErrValidation.
func (e *FieldError) Is(target error) bool { return target == ErrValidation }

// ValidationError returns a *FieldError with the given user-facing message.
func ValidationError(msg string) error {
	return &FieldError{Message: msg}
}
