package errors

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("already in use")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("you are not the author of this post")
	ErrStore              = errors.New("store unavailable")
	ErrRevocationDisabled = errors.New("token revocation is not enabled")
)

// ValidationError reports a malformed input field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ConflictError reports a uniqueness violation on Field. It matches ErrConflict.
type ConflictError struct {
	Field string
}

func NewConflictError(field string) *ConflictError {
	return &ConflictError{Field: field}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, ErrConflict.Error())
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// StoreError wraps a storage or transport failure. It matches ErrStore and
// unwraps to the driver error.
type StoreError struct {
	Op  string
	Err error
}

func NewStoreError(op string, err error) *StoreError {
	return &StoreError{Op: op, Err: err}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}
