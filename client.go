package restclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

// Request describes one logical HTTP request issued through [Client.Do].
// Params and Headers are merged over the client's configured defaults;
// the per-call value wins on conflict.
type Request struct {
	Method   string
	Endpoint string
	Body     any
	Params   map[string]string
	Headers  map[string]string
}

// Client issues JSON requests against a fixed base URL with a bounded
// retry policy. A Client is stateless between requests apart from its
// configuration and may be shared across goroutines.
type Client struct {
	baseURL string
	options *Options
	http    *resty.Client
}

// New creates a client for the given base URL. The base URL must be
// non-empty; all other settings have defaults and are adjusted through
// [Option] functions.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, &APIError{Message: "base URL must be set"}
	}

	options := newClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := options.Validate(); err != nil {
		return nil, &APIError{Message: fmt.Sprintf("invalid options: %v", err)}
	}

	httpClient := resty.New().
		SetTimeout(options.timeout).
		SetHeaders(options.requestHeaders)

	if options.insecureSkipVerify {
		httpClient.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	if options.basicAuthUsername != "" {
		httpClient.SetBasicAuth(options.basicAuthUsername, options.basicAuthPassword)
	}

	if options.authToken != "" {
		if options.authScheme != "" {
			httpClient.SetAuthScheme(options.authScheme)
		}
		httpClient.SetAuthToken(options.authToken)
	}

	return &Client{
		baseURL: baseURL,
		options: options,
		http:    httpClient,
	}, nil
}

// Use constructs a client, runs fn with it, and releases the client's
// connections on every exit path.
func Use(baseURL string, fn func(*Client) error, opts ...Option) error {
	c, err := New(baseURL, opts...)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

// Close releases idle connections held by the underlying transport. The
// client must not be used after Close.
func (c *Client) Close() {
	if c == nil || c.http == nil {
		return
	}
	c.http.GetClient().CloseIdleConnections()
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Endpoint: endpoint, Params: params})
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Endpoint: endpoint, Body: body})
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Endpoint: endpoint, Body: body})
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Endpoint: endpoint, Body: body})
}

func (c *Client) Delete(ctx context.Context, endpoint string) (any, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Endpoint: endpoint})
}

// Do executes one logical request and normalizes the outcome: a 2xx
// response yields the parsed JSON body (nil for an empty body), everything
// else yields an [*APIError]. Retries are applied per the configured
// policy before the error is surfaced.
func (c *Client) Do(ctx context.Context, req *Request) (any, error) {
	resp, err := c.doRaw(ctx, req)
	if err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return nil, nil
	}

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &APIError{
			Message:    fmt.Sprintf("malformed response body: %v", err),
			StatusCode: resp.StatusCode(),
			Err:        err,
		}
	}
	return parsed, nil
}

// DoInto executes the request like [Client.Do] and unmarshals the response
// body into out. A 2xx response with an empty body leaves out untouched.
func (c *Client) DoInto(ctx context.Context, req *Request, out any) error {
	resp, err := c.doRaw(ctx, req)
	if err != nil {
		return err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{
			Message:    fmt.Sprintf("malformed response body: %v", err),
			StatusCode: resp.StatusCode(),
			Err:        err,
		}
	}
	return nil
}

// doRaw runs the retry loop and maps transport failures and non-2xx
// responses to [*APIError]. The returned response is always 2xx.
func (c *Client) doRaw(ctx context.Context, req *Request) (*resty.Response, error) {
	if c == nil {
		return nil, &APIError{Message: "client is nil"}
	}
	if req == nil || strings.TrimSpace(req.Method) == "" {
		return nil, &APIError{Message: "request method must be set"}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	url := joinURL(c.baseURL, req.Endpoint)

	resp, err := c.execute(ctx, method, url, req)
	if err != nil {
		c.options.requestLogger.Errorf("%s %s failed: %v", method, url, err)
		return nil, &APIError{
			Message: fmt.Sprintf("%s %s: %v", method, url, err),
			Err:     err,
		}
	}

	if !resp.IsSuccess() {
		message := extractErrorMessage(resp.Body())
		c.options.requestLogger.Errorf("%s %s returned %d: %s", method, url, resp.StatusCode(), message)
		return nil, &APIError{
			Message:    fmt.Sprintf("%s %s: %s", method, url, message),
			StatusCode: resp.StatusCode(),
		}
	}

	c.options.requestLogger.Debugf("%s %s returned %d", method, url, resp.StatusCode())
	return resp, nil
}

// execute performs up to retryCount+1 attempts. Retry state lives entirely
// in this loop; nothing is carried across separate calls.
func (c *Client) execute(ctx context.Context, method, url string, req *Request) (*resty.Response, error) {
	var requestID string
	if c.options.requestID {
		requestID = uuid.NewString()
	}

	var resp *resty.Response
	var err error
	for attempt := 0; ; attempt++ {
		resp, err = c.attempt(ctx, method, url, req, requestID)
		if err == nil && resp.IsSuccess() {
			return resp, nil
		}
		if attempt >= c.options.retryCount || !c.options.retryPolicy(resp, err) {
			return resp, err
		}

		wait := c.backoff(attempt)
		c.options.requestLogger.Warnf("%s %s attempt %d/%d failed, retrying in %v",
			method, url, attempt+1, c.options.retryCount+1, wait)

		select {
		case <-ctx.Done():
			return resp, ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) attempt(ctx context.Context, method, url string, req *Request, requestID string) (*resty.Response, error) {
	r := c.http.R().SetContext(ctx)

	for param, value := range c.options.queryParams {
		r.SetQueryParam(param, value)
	}
	for param, value := range req.Params {
		r.SetQueryParam(param, value)
	}
	for header, value := range req.Headers {
		r.SetHeader(header, value)
	}
	if requestID != "" && r.Header.Get(headerRequestID) == "" {
		r.SetHeader(headerRequestID, requestID)
	}
	if req.Body != nil {
		r.SetBody(req.Body)
	}

	return r.Execute(method, url)
}

// backoff returns the wait before the retry following the given attempt:
// retryWaitTime doubled per attempt, capped at retryMaxWaitTime.
func (c *Client) backoff(attempt int) time.Duration {
	wait := c.options.retryWaitTime << attempt
	if wait <= 0 || wait > c.options.retryMaxWaitTime {
		wait = c.options.retryMaxWaitTime
	}
	return wait
}

// joinURL appends endpoint to base with exactly one path separator,
// regardless of trailing/leading slashes on either part.
func joinURL(base, endpoint string) string {
	base = strings.TrimRight(base, "/")
	endpoint = strings.TrimLeft(endpoint, "/")
	if endpoint == "" {
		return base
	}
	return base + "/" + endpoint
}

// extractErrorMessage pulls a human-readable message out of an error
// response body: the "error" field of a JSON object when present, the raw
// body otherwise.
func extractErrorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "(empty error body)"
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}

	return string(trimmed)
}
