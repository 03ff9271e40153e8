// internal/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for the failure taxonomy shared by all services. Callers
// classify with errors.Is and must not depend on message text.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrForbidden   = errors.New("forbidden")
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrInternal    = errors.New("internal error")
)

// Validation reports malformed input.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) error {
	return Validation(fmt.Sprintf(format, args...))
}

// NotFound reports a missing entity or reference.
func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// NotFoundf is NotFound with formatting.
func NotFoundf(format string, args ...any) error {
	return NotFound(fmt.Sprintf(format, args...))
}

// Conflict reports an illegal state transition or uniqueness violation.
func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// Conflictf is Conflict with formatting.
func Conflictf(format string, args ...any) error {
	return Conflict(fmt.Sprintf(format, args...))
}

// Forbidden reports a disallowed operation.
func Forbidden(msg string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, msg)
}

// Internal wraps a persistence or collaborator failure. The cause stays in
// the error chain for logging; handlers must not echo it to clients.
func Internal(msg string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrInternal, msg)
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, msg, cause)
}

// Message returns the human-readable part of a taxonomy error, without the
// sentinel prefix the wrap helpers add. Response bodies carry this, not the
// full chain.
func Message(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrForbidden, ErrRateLimited, ErrInternal} {
		if errors.Is(err, sentinel) {
			return strings.TrimPrefix(msg, sentinel.Error()+": ")
		}
	}
	return msg
}

// Status maps a taxonomy error to its HTTP status code. Unclassified errors
// count as internal.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
