package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrAccountNotFound indicates no account exists for the given email.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials indicates the provided password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailNotVerified indicates the account has not completed email verification.
	ErrEmailNotVerified = errors.New("email is not verified")
	// ErrAccountDeactivated indicates the account exists but is disabled.
	ErrAccountDeactivated = errors.New("account is deactivated")
	// ErrActivationInvalid indicates the activation link could not be accepted,
	// for any reason. Callers are deliberately not told which check failed.
	ErrActivationInvalid = errors.New("activation link is invalid")
)

// ValidationError reports a rejected input field. It maps to a 400 response
// with the field name preserved so clients can attach the message to the
// right form input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError constructs a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
