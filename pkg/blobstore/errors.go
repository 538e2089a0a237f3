package blobstore

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates the requested object does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrContainerNotFound indicates the container does not exist.
	ErrContainerNotFound = errors.New("container not found")

	// ErrAccessDenied indicates insufficient permissions.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidCredentials indicates authentication failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnavailable indicates the backend service could not be reached
	// or answered with a server-side failure. Not retried here; callers
	// decide whether to re-drive.
	ErrUnavailable = errors.New("backend unavailable")
)

// StoreError wraps backend-specific errors with operation context.
type StoreError struct {
	// Op is the operation that failed (e.g., "Upload", "ListFlat").
	Op string

	// Backend is the implementation the error came from.
	Backend Backend

	// Container is the container name, if applicable.
	Container string

	// Key is the object key, if applicable.
	Key string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s: %s/%s: %v", e.Backend, e.Op, e.Container, e.Key, e.Err)
	}
	if e.Container != "" {
		return fmt.Sprintf("%s %s: %s: %v", e.Backend, e.Op, e.Container, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error indicates an absent object or
// container.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrContainerNotFound)
}

// IsAccessDenied returns true if the error indicates insufficient
// permissions.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsUnavailable returns true if the error indicates the backend could not
// serve the request.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
