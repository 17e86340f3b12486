package restclient

import (
	"errors"
	"fmt"
)

// APIError is the single structured error type used for all failure
// signaling. StatusCode is zero when no HTTP status was available, i.e. on
// transport-level failures (DNS, connection refused, timeout) and local
// guard failures. Err holds the underlying cause when one exists and is
// reachable through errors.Is/errors.As.
type APIError struct {
	Message    string
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
	}
	return e.Message
}

func (e *APIError) Unwrap() error { return e.Err }

// IsTransport reports whether the error occurred before an HTTP status was
// received.
func (e *APIError) IsTransport() bool { return e.StatusCode == 0 }

// IsClientError reports whether the error carries a 4xx status.
func (e *APIError) IsClientError() bool { return e.StatusCode >= 400 && e.StatusCode < 500 }

// IsServerError reports whether the error carries a 5xx status.
func (e *APIError) IsServerError() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }

// ErrNotAuthenticated is returned by [RequireAuth]-wrapped calls made on a
// session that has not completed a login.
var ErrNotAuthenticated = &APIError{Message: "not authenticated - login required"}

// AsAPIError unwraps err into an [*APIError], following wrapped error
// chains.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
