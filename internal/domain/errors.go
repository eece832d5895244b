package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError for transport mapping.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindInvalidArgument ErrorKind = "invalid_argument"
	KindInvalidState    ErrorKind = "invalid_state"
	KindConflict        ErrorKind = "conflict"
	KindForbidden       ErrorKind = "forbidden"
)

// DomainError is a deterministic, non-retryable failure of a core operation.
// Every core operation either succeeds or fails with exactly one DomainError;
// infrastructure failures are wrapped with fmt.Errorf instead.
type DomainError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return e.Message
}

// NewNotFoundError creates a NotFound error for a missing (or invisible) entity.
// Access denials that must stay disclosure-opaque use this kind as well.
func NewNotFoundError(entity string, id int64) *DomainError {
	return &DomainError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s with ID=%d not found", entity, id),
	}
}

// NewValidationError creates an InvalidArgument error for semantically bad input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindInvalidArgument, Message: message}
}

// NewInvalidStateError creates an InvalidState error for operations that
// conflict with the current entity state.
func NewInvalidStateError(message string) *DomainError {
	return &DomainError{Kind: KindInvalidState, Message: message}
}

// NewConflictError creates a Conflict error for uniqueness or concurrency violations.
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// NewForbiddenError creates a Forbidden error for explicit (non-opaque) access denials.
func NewForbiddenError(message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Message: message}
}

// KindOf returns the error kind of err, or "" if err is not a DomainError.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsNotFound reports whether err is a NotFound domain error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsInvalidArgument reports whether err is an InvalidArgument domain error.
func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }

// IsInvalidState reports whether err is an InvalidState domain error.
func IsInvalidState(err error) bool { return KindOf(err) == KindInvalidState }

// IsConflict reports whether err is a Conflict domain error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsForbidden reports whether err is a Forbidden domain error.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }
