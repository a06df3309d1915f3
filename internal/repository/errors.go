package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicate = errors.New("duplicate value")
	ErrNotFound  = errors.New("record not found")

	// ErrResetTokenInvalid covers unknown, expired and already used tokens.
	ErrResetTokenInvalid = errors.New("reset token invalid")
	// ErrResetUserMissing means the reset request's email has no user.
	ErrResetUserMissing = errors.New("reset user missing")
)

const uniqueViolationMarker = "UNIQUE constraint failed: "

// DuplicateError reports which column violated a UNIQUE constraint.
type DuplicateError struct {
	Field string
	Err   error
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate %s: %v", e.Field, e.Err)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

func (e *DuplicateError) Unwrap() error { return e.Err }

// asDuplicate converts a SQLite unique violation into *DuplicateError, or returns nil.
func asDuplicate(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	i := strings.Index(msg, uniqueViolationMarker)
	if i < 0 {
		return nil
	}
	// "users.username (2067)" -> "username"
	col := msg[i+len(uniqueViolationMarker):]
	if j := strings.IndexAny(col, " ,)"); j >= 0 {
		col = col[:j]
	}
	if k := strings.LastIndex(col, "."); k >= 0 {
		col = col[k+1:]
	}
	return &DuplicateError{Field: col, Err: err}
}
