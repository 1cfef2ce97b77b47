package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Caller input errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidFold     = fmt.Errorf("%w: fold", ErrInvalidArgument)
	ErrLengthMismatch  = fmt.Errorf("%w: length mismatch", ErrInvalidArgument)
	ErrNotNumeric      = fmt.Errorf("%w: column is not numeric", ErrInvalidArgument)

	// Lookup errors
	ErrNotFound      = errors.New("resource not found")
	ErrMissingColumn = errors.New("missing column")
	ErrRunNotFound   = fmt.Errorf("%w: remediation run", ErrNotFound)
)

// NewInvalidArgumentError wraps ErrInvalidArgument with the offending parameter
func NewInvalidArgumentError(param string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, param, reason)
}

// NewMissingColumnError reports a column absent from a table
func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrMissingColumn, column)
}

// NewNotNumericError reports a categorical column used where numbers are required
func NewNotNumericError(column string) error {
	return fmt.Errorf("%w: %q", ErrNotNumeric, column)
}

func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// Error checking helpers
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCallerError reports whether err was caused by bad input rather than an internal failure
func IsCallerError(err error) bool {
	return IsInvalidArgument(err) || IsMissingColumn(err)
}
