// Package common defines sentinel errors and small helpers shared by the
// gophtodo storage, service and CLI layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrCorruptDocument = errors.New("corrupt stored document")

	// Validation errors. Field-level details travel in models.ValidationError.
	ErrValidation = errors.New("validation failed")
	ErrEmailTaken = errors.New("email already registered")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrResetTokenInvalid  = errors.New("reset token invalid or expired")
	ErrNotLoggedIn        = errors.New("not logged in")

	// Task errors.
	ErrUnknownFilter = errors.New("unknown filter")
	ErrAmbiguousID   = errors.New("ambiguous task id")
)
