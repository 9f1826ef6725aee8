package apperr

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrValidation              = errors.New("validation failed")
	ErrInvalidTransition       = errors.New("invalid state transition")
	ErrInsufficientOutstanding = errors.New("amount exceeds outstanding balance")
	ErrInsufficientFunds       = errors.New("insufficient funds")
	ErrTransient               = errors.New("service temporarily unavailable")
	ErrReconciliation          = errors.New("reconciliation mismatch")
	ErrNotFound                = errors.New("not found")
	ErrForbidden               = errors.New("forbidden")
)

// Validation wraps ErrValidation with a user-facing message.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Transition wraps ErrInvalidTransition with a user-facing message.
func Transition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}

// Transient marks err as retryable. A nil err stays nil.
func Transient(err error) error {
	if err == nil || errors.Is(err, ErrTransient) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// IsTransient reports whether err is safe to retry.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient) || errors.Is(err, context.DeadlineExceeded)
}
