package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")

	// ErrMoveDeclined marks a structural move whose target parent no
	// longer exists once the moved subtrees are extracted. The tree
	// engine treats this as a no-op; the service surfaces it so callers
	// can tell a declined move from a successful one.
	ErrMoveDeclined = errors.New("move target not found")
)

// NotFoundError indicates a resource was not found
type NotFoundError struct {
	Resource string // Type of resource (page, project)
	ID       string // Identifier that was looked up
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// StatusCode implements the HTTPError interface
func (e *NotFoundError) StatusCode() int {
	return http.StatusNotFound
}

// Is allows errors.Is() to match against ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError represents a resource conflict with details about the
// existing resource.
type ConflictError struct {
	Resource string // Type of resource (page, project)
	Message  string // Human-readable error message
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
