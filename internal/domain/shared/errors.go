package shared

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a DomainError for the transport layer
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindInvalidReference ErrorKind = "invalid_reference"
	KindConflict         ErrorKind = "conflict"
	KindValidation       ErrorKind = "validation"
	KindAccessDenied     ErrorKind = "access_denied"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"-"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewNotFoundError reports that an entity with the given id does not exist
func NewNotFoundError(entity string, id int64) *DomainError {
	return NewDomainError(KindNotFound, "NOT_FOUND", fmt.Sprintf("%s not found: %d", entity, id))
}

// NewInvalidReferenceError reports that a referenced id does not resolve
func NewInvalidReferenceError(message string) *DomainError {
	return NewDomainError(KindInvalidReference, "INVALID_REFERENCE", message)
}

// NewConflictError reports a state conflict, usually a delete blocked by a dependent row
func NewConflictError(message string) *DomainError {
	return NewDomainError(KindConflict, "CONFLICT", message)
}

// NewValidationError reports a rejected input value
func NewValidationError(message string) *DomainError {
	return NewDomainError(KindValidation, "VALIDATION_ERROR", message)
}

// NewAccessDeniedError reports a failed authorization check
func NewAccessDeniedError(message string) *DomainError {
	return NewDomainError(KindAccessDenied, "ACCESS_DENIED", message)
}

// Common domain errors
var (
	ErrNotFound      = NewDomainError(KindNotFound, "NOT_FOUND", "Resource not found")
	ErrAlreadyExists = NewDomainError(KindConflict, "ALREADY_EXISTS", "Resource already exists")
	ErrAccessDenied  = NewDomainError(KindAccessDenied, "ACCESS_DENIED", "Access denied")
)

// KindOf returns the kind of a domain error, or "" for any other error
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
