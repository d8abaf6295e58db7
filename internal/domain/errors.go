package domain

import (
	"fmt"
)

// ValidationError reports a scenario input rejected at the boundary. Field
// names the offending configuration path.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ReferenceDataError reports missing reference data: an unregistered tax
// year, state rule, or life-expectancy factor. Not recoverable locally.
type ReferenceDataError struct {
	Kind string
	Key  string
}

func (e *ReferenceDataError) Error() string {
	return fmt.Sprintf("reference data missing: %s %q", e.Kind, e.Key)
}
