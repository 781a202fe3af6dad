package models

import (
	"sort"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// Form field names used as ValidationError keys.
const (
	FieldFullname        = "fullname"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm-password"
)

// ValidationError maps form fields to user-facing messages. It matches
// common.ErrValidation with errors.Is, and Cause when one is set.
type ValidationError struct {
	Fields map[string]string
	Cause  error
}

// NewValidationError returns an empty ValidationError ready for Set.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Set records msg for field, replacing an earlier message for the same field.
func (e *ValidationError) Set(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

// Err returns e, or nil when no field has a message.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{common.ErrValidation, e.Cause}
	}
	return []error{common.ErrValidation}
}

// FieldError is a shortcut for a ValidationError with a single field.
func FieldError(field, msg string, cause error) *ValidationError {
	e := NewValidationError()
	e.Set(field, msg)
	e.Cause = cause
	return e
}
