package api

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrRequestFailed    = errors.New("request failed")
)

// ErrSessionExpired is returned when a 401 could not be recovered by a token
// refresh. It also matches ErrNotAuthenticated.
var ErrSessionExpired error = sessionExpiredError{}

type sessionExpiredError struct{}

func (sessionExpiredError) Error() string {
	return "session expired, please sign in again"
}

func (sessionExpiredError) Is(target error) bool {
	return target == ErrNotAuthenticated
}

// RequestError is a non-2xx response or a transport failure (Status 0).
// Message carries the server's explanation when it sent one.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
}

func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Message extracts the text to show a user for err.
func Message(err error) string {
	var requestErr *RequestError
	if errors.As(err, &requestErr) && requestErr.Message != "" {
		return requestErr.Message
	}
	if errors.Is(err, ErrSessionExpired) {
		return ErrSessionExpired.Error()
	}
	if errors.Is(err, ErrNotAuthenticated) {
		return "Please sign in to continue"
	}
	return "Something went wrong. Please try again."
}

// StatusCode returns the HTTP status of a RequestError, or 0.
func StatusCode(err error) int {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Status
	}
	return 0
}

func statusMessage(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", status)
}
