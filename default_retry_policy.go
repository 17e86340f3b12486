package restclient

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// DefaultRetryPolicy is the default retry condition used by [Client]. It
// retries only on 5xx server errors. 4xx responses and transport-level
// failures (DNS, connection refused, timeout) are never retried and
// surface immediately.
//
// Supply a custom function via [WithRetryPolicy] to override this
// behaviour.
func DefaultRetryPolicy(r *resty.Response, err error) bool {
	if err != nil || r == nil {
		return false
	}
	return r.StatusCode() >= http.StatusInternalServerError
}

// TransientRetryPolicy additionally retries transient connection errors
// and HTTP 429 (rate limit). Context cancellation, deadline exceeded, and
// DNS resolution errors are never retried.
func TransientRetryPolicy(r *resty.Response, err error) bool {
	if err != nil {
		// Don't retry on context cancellation or deadline exceeded
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false
		}

		// Don't retry on DNS resolution errors
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) {
			return false
		}

		// Retry on other connection errors
		return true
	}

	if r == nil {
		return false
	}

	return r.StatusCode() == http.StatusTooManyRequests ||
		r.StatusCode() >= http.StatusInternalServerError
}
