// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEntry    = errors.New("duplicate entry")
	ErrDatabaseCorrupted = errors.New("database corrupted")

	// Simulation source errors.
	ErrSourceUnavailable = errors.New("simulation source unavailable")
	ErrDeviceNotFound    = errors.New("device not found")

	// Costing errors. These are recoverable per device: the pipeline records
	// them on the device's result entry and continues.
	ErrNoCorrelation    = errors.New("no cost correlation for subtype")
	ErrMissingProperty  = errors.New("missing required property")
	ErrNoMaterialFactor = errors.New("no material factor for material code")
	ErrUnknownUnit      = errors.New("unknown unit label")

	// Review errors.
	ErrAlreadyCommitted = errors.New("classification already committed")
	ErrSubtypeRequired  = errors.New("subtype selection required")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRecoverable reports whether an error is a per-device outcome that the
// pipeline records and moves past, as opposed to a setup failure that must
// abort the run.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrDeviceNotFound) ||
		errors.Is(err, ErrNoCorrelation) ||
		errors.Is(err, ErrMissingProperty) ||
		errors.Is(err, ErrNoMaterialFactor) ||
		errors.Is(err, ErrUnknownUnit)
}
