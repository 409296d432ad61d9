package internaltypes

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	// ErrConflict marks a capacity/quota race lost to another actor. It is
	// an expected, recoverable outcome, surfaced as a warning and never
	// retried automatically.
	ErrConflict = errors.New("conflict")
)

// APIError is a structured failure from the portal REST API, preserving the
// HTTP-like status and server message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("portal api: http %d", e.Status)
	}
	return fmt.Sprintf("portal api: %s (status=%d)", e.Message, e.Status)
}

// Is maps well-known statuses onto the sentinel taxonomy so callers can use
// errors.Is without reaching for the concrete type.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrConflict:
		return e.Status == http.StatusConflict
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// IsConflict reports whether err represents a lost capacity/quota race.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsUnauthorized reports whether err represents a missing/rejected authorization.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
