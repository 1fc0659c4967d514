package canvas

import (
	"errors"
	"fmt"
)

// AuthError indicates the upstream rejected the bearer token (HTTP 401).
// It is fatal for the current session: callers react by clearing the
// stored token and prompting re-authentication.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed (401): %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// ValidationError indicates malformed input at the client boundary
// (base URL, course IDs, dates). It is raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// IsValidationError reports whether err is a boundary ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// UpstreamError represents a non-2xx, non-401 HTTP response from Canvas.
// Message carries a best-effort extraction from the response body.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("canvas API error (HTTP %d): %s", e.StatusCode, e.Message)
}

// StatusOf returns the HTTP status carried by an UpstreamError in err's
// chain, or 0 when err is not an upstream failure.
func StatusOf(err error) int {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.StatusCode
	}
	return 0
}

// NetworkError represents a transport-level failure (DNS, timeout,
// connection reset) before any HTTP status was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
