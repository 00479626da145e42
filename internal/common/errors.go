package common

import (
	"errors"
)

// Error taxonomy shared by services and the HTTP boundary.
var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrNoSuchTenant           = errors.New("no tenant found with this contact number")
	ErrNotFound               = errors.New("not found")
	ErrUnauthorized           = errors.New("authentication required")
	ErrForbidden              = errors.New("access to this tenant is not permitted")
	ErrTransitionNotSupported = errors.New("reopening a fixed complaint is not supported")
)

// ValidationError reports missing or malformed input for a single field
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError names the missing resource and matches ErrNotFound
type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InternalError wraps a store or runtime failure. Message is safe to show a
// client; Err is only ever logged.
type InternalError struct {
	Message string
	Err     error
}

func NewInternalError(message string, err error) error {
	return &InternalError{Message: message, Err: err}
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsDomainError reports whether err belongs to the client-facing taxonomy,
// i.e. anything that is not an internal failure.
func IsDomainError(err error) bool {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrNoSuchTenant),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrTransitionNotSupported):
		return true
	}
	return false
}
