// Package apperr provides the error taxonomy shared by the pricing modules.
package apperr

import (
	"errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	TypeValidation          Type = "VALIDATION_ERROR"
	TypeDataInconsistency   Type = "DATA_INCONSISTENCY"
	TypeConcurrencyConflict Type = "CONCURRENCY_CONFLICT"
	TypeSnapshotIntegrity   Type = "SNAPSHOT_INTEGRITY_ERROR"
	TypeNotFound            Type = "NOT_FOUND"
	TypeInternal            Type = "INTERNAL_ERROR"
)

// Sentinels usable with errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrDataInconsistency   = errors.New("data inconsistency")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
	ErrSnapshotIntegrity   = errors.New("snapshot integrity error")
	ErrNotFound            = errors.New("not found")
	ErrInternal            = errors.New("internal error")
)

var sentinels = map[Type]error{
	TypeValidation:          ErrValidation,
	TypeDataInconsistency:   ErrDataInconsistency,
	TypeConcurrencyConflict: ErrConcurrencyConflict,
	TypeSnapshotIntegrity:   ErrSnapshotIntegrity,
	TypeNotFound:            ErrNotFound,
	TypeInternal:            ErrInternal,
}

// Error represents a domain error with context
type Error struct {
	Type    Type           `json:"type"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Context map[string]any `json:"context,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of the error's type.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Type]
	return ok && s == target
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func New(t Type, message string) *Error {
	return &Error{Type: t, Message: message}
}

func Newf(t Type, format string, args ...any) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

func Wrap(t Type, message string, cause error) *Error {
	return &Error{Type: t, Message: message, Cause: cause}
}

// Validation creates a validation error for a single field.
func Validation(field, message string) *Error {
	return New(TypeValidation, message).WithContext("field", field)
}

func DataInconsistency(message string) *Error {
	return New(TypeDataInconsistency, message)
}

func ConcurrencyConflict(message string, cause error) *Error {
	return Wrap(TypeConcurrencyConflict, message, cause)
}

func SnapshotIntegrity(message string, cause error) *Error {
	return Wrap(TypeSnapshotIntegrity, message, cause)
}

func NotFound(what string) *Error {
	return Newf(TypeNotFound, "%s not found", what)
}

func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}

// TypeOf returns the type of the first *Error in the chain, or TypeInternal.
func TypeOf(err error) Type {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return TypeInternal
}

// As returns the first *Error in the chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
