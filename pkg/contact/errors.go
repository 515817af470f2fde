package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common error conditions.
var (
	// ErrNotConfigured is returned when a relay lacks credentials.
	ErrNotConfigured = errors.New("contact: relay not configured")

	// ErrNoRelays is returned when a chain is built without relays.
	ErrNoRelays = errors.New("contact: no relays available")

	// ErrAllRelaysFailed is returned when every relay in a chain fails.
	ErrAllRelaysFailed = errors.New("contact: all relays failed")

	// ErrInvalidForm is wrapped by FieldError.
	ErrInvalidForm = errors.New("contact: invalid form")
)

// FieldError names the form field that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("contact: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidForm.
func (e *FieldError) Unwrap() error {
	return ErrInvalidForm
}

// APIError represents a non-2xx response from a relay's API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the response body text.
	Message string

	// Relay identifies which relay returned the error.
	Relay string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact [%s]: HTTP %d", e.Relay, e.StatusCode)
	}
	return fmt.Sprintf("contact [%s]: API error %d: %s", e.Relay, e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// RelayError wraps an error with relay context.
type RelayError struct {
	Relay string
	Err   error
}

// Error implements the error interface.
func (e *RelayError) Error() string {
	return fmt.Sprintf("contact [%s]: %v", e.Relay, e.Err)
}

// Unwrap returns the underlying error.
func (e *RelayError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with relay context.
func WrapError(relay string, err error) error {
	if err == nil {
		return nil
	}
	var re *RelayError
	if errors.As(err, &re) && re.Relay == relay {
		return err
	}
	return &RelayError{Relay: relay, Err: err}
}

// ChainError collects the failure of every relay in a chain.
type ChainError struct {
	Errors []error
}

// Error implements the error interface.
func (e *ChainError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%v: %s", ErrAllRelaysFailed, strings.Join(msgs, "; "))
}

// Unwrap exposes ErrAllRelaysFailed and each relay error to errors.Is/As.
func (e *ChainError) Unwrap() []error {
	return append([]error{ErrAllRelaysFailed}, e.Errors...)
}
