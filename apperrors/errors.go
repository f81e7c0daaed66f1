// Package apperrors holds the error kinds shared by the store, services and
// middleware packages, so any layer can classify a failure without importing
// the layer that produced it.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthenticated means no verified identity was attached to the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden means the caller is authenticated but not allowed to touch
	// the target record.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidIdentity means the identity token failed verification. Treated
	// as unauthenticated, never as a server fault.
	ErrInvalidIdentity = errors.New("invalid identity token")
	// ErrMalformedScore means a persisted score string could not be decoded.
	ErrMalformedScore = errors.New("malformed score string")
)

// ValidationError rejects a request body before any persistence call.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// StorageError wraps any persistence failure, including constraint violations
// surfaced during a transactional write. Driver error types never leak past it.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "storage failure: " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }

func Storage(err error) error {
	return &StorageError{Err: err}
}

// ConsistencyError reports a broken internal invariant, e.g. a match row
// referencing a player that referential integrity should have guaranteed.
type ConsistencyError struct {
	Reason string
}

func (e *ConsistencyError) Error() string { return "consistency violation: " + e.Reason }

func Consistency(format string, args ...any) error {
	return &ConsistencyError{Reason: fmt.Sprintf(format, args...)}
}

func MalformedScore(encoded, reason string) error {
	return fmt.Errorf("%w %q: %s", ErrMalformedScore, encoded, reason)
}

// Status maps an error to the HTTP status code the dispatch boundary responds
// with. Anything unclassified is a server fault.
func Status(err error) int {
	var validation *ValidationError
	switch {
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidIdentity):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
