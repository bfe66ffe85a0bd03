package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds the core distinguishes, even where the outer boundary collapses
// them into a generic response.
var (
	// ErrEmailTaken reports a duplicate email on account creation, whether
	// caught by the advisory pre-check or by the store's unique constraint.
	ErrEmailTaken = errors.New("account with this email already exists")

	// ErrNotFound reports an operation targeting a nonexistent account.
	ErrNotFound = errors.New("account not found")

	// ErrInvalidCredentials covers both unknown email and password mismatch.
	// Callers outside the core must not be able to tell which.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAccountExpired     = errors.New("account is expired")
	ErrAccountLocked      = errors.New("account is locked")
	ErrCredentialsExpired = errors.New("credentials have expired")

	// ErrSessionInvalid reports an unknown, expired, or revoked session handle.
	ErrSessionInvalid = errors.New("session is invalid or expired")
)

// ValidationError reports malformed input rejected before any store access.
type ValidationError struct {
	Fields []string // human-readable per-field messages
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps an unexpected repository failure so callers can
// distinguish infrastructure faults from domain outcomes.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("storage: %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }
