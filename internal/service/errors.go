package service

import "errors"

var (
	// ErrValidation marks malformed or conflicting input.
	ErrValidation = errors.New("validation failed")
	// ErrAuthentication marks missing or invalid credentials.
	ErrAuthentication = errors.New("authentication failed")
	// ErrNotFound marks a resource that is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes why a field was rejected. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
