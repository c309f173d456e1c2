package pileus

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// Pileus-specific errors.
var (
	// ErrInvalidResponse indicates a response body that could not be used.
	ErrInvalidResponse = errors.New("pileus: invalid response")
)

// RateLimitError represents a 429 response.
type RateLimitError struct {
	RetryAfter time.Duration
	URL        string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("pileus: rate limit exceeded, retry after %s (URL: %s)", e.RetryAfter, e.URL)
	}
	return fmt.Sprintf("pileus: rate limit exceeded (URL: %s)", e.URL)
}

// Is reports rate limit errors as domain.ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == domain.ErrRateLimited
}

// APIError represents a non-success Pileus API response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("pileus: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Is maps status codes onto domain errors so services stay HTTP-agnostic.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrAuthInvalid:
		return e.StatusCode == http.StatusUnauthorized
	case domain.ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}

// IsNotFound checks if the error indicates a resource was not found.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}
	return false
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsUnauthorized checks if the error indicates an authentication failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusUnauthorized
	}
	return false
}

// IsForbidden checks if the error indicates a forbidden resource.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusForbidden
	}
	return false
}

// isRetryable reports whether a GET may be retried after err.
func isRetryable(err error) bool {
	if IsRateLimited(err) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}
	var netErr *networkError
	return errors.As(err, &netErr)
}

// networkError wraps transport failures (timeouts, refused connections).
type networkError struct {
	err error
}

func (e *networkError) Error() string { return e.err.Error() }
func (e *networkError) Unwrap() error { return e.err }
