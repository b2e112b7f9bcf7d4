package schema

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError reports malformed caller input, detected before any I/O.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AuthenticationError reports an invalid or missing GitHub credential.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// RateLimitError reports GitHub API quota exhaustion. ResetAt carries the
// quota reset hint when the API provided one.
type RateLimitError struct {
	Message string
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	if e.ResetAt.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("%s (resets at %s)", e.Message, e.ResetAt.Format(time.RFC3339))
}

// APIError is the catch-all for transport, parse and unexpected GitHub API
// failures. It wraps the original cause for diagnostics.
type APIError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError builds an APIError without a wrapped cause.
func NewAPIError(format string, args ...any) *APIError {
	return &APIError{Message: fmt.Sprintf(format, args...)}
}

// WrapAPIError returns err unchanged when it already belongs to the error
// taxonomy (validation, authentication, rate limit, API); any other error is
// wrapped into an APIError with its message preserved.
func WrapAPIError(message string, err error) error {
	if err == nil {
		return nil
	}
	var (
		ve *ValidationError
		ae *AuthenticationError
		re *RateLimitError
		ge *APIError
	)
	if errors.As(err, &ve) || errors.As(err, &ae) || errors.As(err, &re) || errors.As(err, &ge) {
		return err
	}
	return &APIError{Message: message, Err: err}
}
