package service

import "errors"

// Sentinels for errors.Is; the typed errors below match them.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
)

// ValidationError reports a missing or malformed field, or a violated
// business rule such as a due date in the past.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, msg string) error { return &ValidationError{Field: field, Message: msg} }

// ConflictError reports that a unique field is already taken.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string { return e.Field + " already taken" }
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// AuthError reports bad credentials or a missing session.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Is(target error) bool { return target == ErrAuth }

var (
	errInvalidCredentials = &AuthError{Message: "invalid username or password"}
	errNoSession          = &AuthError{Message: "authorization required"}
)
