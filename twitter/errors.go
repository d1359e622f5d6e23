package twitter

import (
	"errors"
	"fmt"
)

// ErrMissingCsrfToken is returned by NewClient when the cookie string has
// no ct0 cookie.
var ErrMissingCsrfToken = errors.New("twitter: cookie has no ct0 token")

// StructuralError reports a response whose anchor key is missing. It is the
// only error the normalization functions return.
type StructuralError struct {
	Key string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("twitter: missing %s", e.Key)
}

// IsStructuralError reports whether err is or wraps a *StructuralError.
func IsStructuralError(err error) bool {
	var structErr *StructuralError
	return errors.As(err, &structErr)
}

// APIError is a non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitter: api returned %d: %s", e.StatusCode, truncateBody(e.Body, 256))
}

// IsAPIError reports whether err is an *APIError with the given status code.
// A zero statusCode matches any status.
func IsAPIError(err error, statusCode int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return statusCode == 0 || apiErr.StatusCode == statusCode
	}
	return false
}

func truncateBody(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// ErrUserNotFound is returned when a screen name does not resolve to a user.
var ErrUserNotFound = errors.New("twitter: user not found")
