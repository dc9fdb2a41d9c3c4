// Package common defines shared constants and sentinel errors used across
// the proxy layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorSessionNotFound = errors.New("session not found")
	ErrorUnauthorized    = errors.New("unauthorized")
	ErrorNotConfigured   = errors.New("api credentials not configured")

	// Validation errors.
	ErrorValidation = errors.New("validation error")
)

// ValidationError reports required request fields that were missing or invalid.
// It matches ErrorValidation under errors.Is.
type ValidationError struct {
	Fields []string
	Reason string
}

// NewMissingFieldsError returns a ValidationError for the given missing fields.
func NewMissingFieldsError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrorValidation
}

// RequireFields returns a ValidationError naming every key of fields whose
// value is blank, in the order given by names. It returns nil when all are set.
func RequireFields(names []string, values map[string]string) error {
	var missing []string
	for _, n := range names {
		if strings.TrimSpace(values[n]) == "" {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return NewMissingFieldsError(missing...)
}
