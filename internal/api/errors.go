// pattern: Functional Core

package api

import (
	"errors"
	"fmt"
)

// ErrServerNotResponding marks transport failures: the request never
// produced a response. Distinct from server errors, which carry a
// status code.
var ErrServerNotResponding = errors.New("server not responding")

// ErrSessionExpired is returned when a refreshed request still comes
// back unauthorized. The caller drops to the login screen.
var ErrSessionExpired = errors.New("session expired, log in again")

// Error is a backend response with a non-2xx status. Message is the
// backend's own message when present, else a generic per-status text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// fallbackMessage maps a status code to a generic user-facing message,
// used when the response body carries none.
func fallbackMessage(status int) string {
	switch {
	case status == 400:
		return "missing required fields"
	case status == 401:
		return "invalid credentials"
	case status == 403:
		return "access denied"
	case status == 404:
		return "not found"
	case status == 429:
		return "too many requests, slow down"
	case status >= 500:
		return "server error, try again later"
	default:
		return fmt.Sprintf("request failed with status %d", status)
	}
}

// serverError builds an *Error from a status and an optional backend
// message body.
func serverError(status int, message string) *Error {
	if message == "" {
		message = fallbackMessage(status)
	}
	return &Error{Status: status, Message: message}
}
