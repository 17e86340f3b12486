package restclient

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Option func(*Options)

type Options struct {
	timeout            time.Duration
	insecureSkipVerify bool
	retryCount         int
	retryWaitTime      time.Duration
	retryMaxWaitTime   time.Duration
	requestLogger      RequestLogger
	retryPolicy        func(*resty.Response, error) bool
	requestHeaders     map[string]string
	queryParams        map[string]string
	basicAuthUsername  string
	basicAuthPassword  string
	authScheme         string
	authToken          string
	requestID          bool
}

func newClientOptions() *Options {
	return &Options{
		timeout:          30 * time.Second,
		retryCount:       3,
		retryWaitTime:    500 * time.Millisecond,
		retryMaxWaitTime: 3 * time.Second,
		requestLogger:    &NoopLogger{},
		retryPolicy:      DefaultRetryPolicy,
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		queryParams: map[string]string{},
	}
}

// WithTimeout sets the per-attempt request timeout. The timeout bounds each
// individual HTTP attempt, not the full retry sequence.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Intended
// for test environments with self-signed certificates.
func WithInsecureSkipVerify() Option {
	return func(o *Options) {
		o.insecureSkipVerify = true
	}
}

func WithRetryCount(count int) Option {
	return func(o *Options) {
		if count >= 0 {
			o.retryCount = count
		}
	}
}

func WithRetryWaitTime(waitTime time.Duration) Option {
	return func(o *Options) {
		if waitTime >= 100*time.Millisecond {
			o.retryWaitTime = waitTime
		}
	}
}

func WithRetryMaxWaitTime(maxWaitTime time.Duration) Option {
	return func(o *Options) {
		if maxWaitTime >= 100*time.Millisecond {
			o.retryMaxWaitTime = maxWaitTime
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

func WithRetryPolicy(policy func(*resty.Response, error) bool) Option {
	return func(o *Options) {
		if policy != nil {
			o.retryPolicy = policy
		}
	}
}

// WithRequestHeader sets a default header sent with every request. Per-call
// headers win on conflict, including over the default Content-Type and
// Accept values.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" {
			return
		}

		o.requestHeaders[header] = value
	}
}

// WithQueryParam sets a default query parameter sent with every request.
// Per-call parameters win on conflict.
func WithQueryParam(param, value string) Option {
	return func(o *Options) {
		param = strings.TrimSpace(param)

		if param == "" {
			return
		}

		o.queryParams[param] = value
	}
}

// WithRequestID enables X-Request-ID injection. Each logical request gets
// one generated ID, shared by all of its retry attempts.
func WithRequestID() Option {
	return func(o *Options) {
		o.requestID = true
	}
}

func WithBasicAuth(username, password string) Option {
	return func(o *Options) {
		o.basicAuthUsername = username
		o.basicAuthPassword = password
	}
}

func WithAuthScheme(scheme string) Option {
	return func(o *Options) {
		o.authScheme = scheme
	}
}

func WithAuthToken(token string) Option {
	return func(o *Options) {
		o.authToken = token
	}
}

// Validate checks the assembled options for states that the Option
// functions cannot reach on their own but that would break the client.
func (o *Options) Validate() error {
	if o.timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if o.retryCount < 0 {
		return errors.New("retryCount must be non-negative")
	}
	if o.retryCount > 100 {
		return errors.New("retryCount must not exceed 100")
	}
	if o.retryWaitTime < 100*time.Millisecond {
		return errors.New("retryWaitTime must be at least 100ms")
	}
	if o.retryWaitTime > time.Minute {
		return fmt.Errorf("retryWaitTime must not exceed %v", time.Minute)
	}
	if o.retryMaxWaitTime < 100*time.Millisecond {
		return errors.New("retryMaxWaitTime must be at least 100ms")
	}
	if o.retryMaxWaitTime > 5*time.Minute {
		return fmt.Errorf("retryMaxWaitTime must not exceed %v", 5*time.Minute)
	}
	if o.retryMaxWaitTime < o.retryWaitTime {
		return fmt.Errorf("retryMaxWaitTime (%v) must be greater than or equal to retryWaitTime (%v)",
			o.retryMaxWaitTime, o.retryWaitTime)
	}
	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}
	if o.retryPolicy == nil {
		return errors.New("retryPolicy must not be nil")
	}
	if o.basicAuthUsername != "" && o.authToken != "" {
		return errors.New("cannot use both basic auth and token auth - choose one")
	}
	return nil
}
