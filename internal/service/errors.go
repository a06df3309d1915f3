package service

import (
	"errors"
	"fmt"
)

// Domain errors. Handlers map them to HTTP statuses with errors.Is / errors.As.
var (
	ErrConflict = errors.New("already exists")
	// ErrAuthentication never says whether the username or the password was wrong.
	ErrAuthentication = errors.New("invalid username or password")
	// ErrInvalidToken covers unknown, expired and already used reset tokens alike.
	ErrInvalidToken = errors.New("invalid or expired reset token")
	ErrNotFound     = errors.New("not found")
	// ErrInvalidCredential is returned for bad or expired bearer tokens.
	ErrInvalidCredential = errors.New("invalid credential")
)

// ValidationError names the input field and the rule it broke.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"error"`
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, rule, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// ConflictError is a uniqueness violation on Field.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	switch e.Field {
	case "username":
		return "Username already exists"
	case "email":
		return "Email already registered"
	default:
		return e.Field + " already exists"
	}
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
