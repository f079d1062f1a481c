package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means the caller has no signed-in identity.
	// Raised before any store access.
	ErrNotAuthenticated = errors.New("not signed in")

	// ErrAlreadyRegistered means a profile already exists for the identity.
	// Terminal and expected; the store is left unmodified. Callers should
	// treat it as "already a member", not a retryable failure.
	ErrAlreadyRegistered = errors.New("already registered")

	ErrCredentialNotFound = errors.New("credential not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidPassword    = errors.New("invalid password")
)

// ValidationError reports a single invalid input field. Raised before any
// store access.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
