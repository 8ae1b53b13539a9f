package types

import "errors"

// ErrBackendUnavailable marks failures caused by lost connectivity to the backend
var ErrBackendUnavailable = errors.New("backend unavailable")

// ValidationError represents input the backend or a form rejected; it should not be retried
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// NotFoundError represents a lookup for an entity the backend does not know
type NotFoundError struct {
	Kind string
	ID   uint64
}

func (e *NotFoundError) Error() string {
	return e.Kind + " not found"
}
