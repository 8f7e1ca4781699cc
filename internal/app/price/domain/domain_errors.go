package domain

import (
	"errors"
	"strings"
)

// Failure kinds. Every validation failure unwraps to exactly one of these.
var (
	ErrMissingField      = errors.New("missing required field")
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// Domain errors as sentinel values
var (
	// Price errors
	ErrPriceNotFound          = errors.New("price not found")
	ErrConcurrentModification = errors.New("price was modified concurrently")

	// Currency errors
	ErrInvalidCurrency = errors.New("invalid currency code")
)

// FieldViolation describes a single rule broken by a command or record.
type FieldViolation struct {
	Field   string
	Kind    error
	Message string
}

func (v FieldViolation) Error() string {
	return v.Field + ": " + v.Message
}

// Unwrap returns the failure kind.
func (v FieldViolation) Unwrap() error {
	return v.Kind
}

// ValidationError collects every violation found while checking a command,
// so callers see all of them at once rather than the first one only.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes each violation so errors.Is matches any contained kind.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Violations))
	for _, v := range e.Violations {
		errs = append(errs, v)
	}
	return errs
}

// violations accumulates FieldViolations during validation.
type violations []FieldViolation

func (vs *violations) add(field string, kind error, message string) {
	*vs = append(*vs, FieldViolation{Field: field, Kind: kind, Message: message})
}

func (vs violations) err() error {
	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{Violations: vs}
}
