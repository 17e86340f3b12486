// Package restclient is a thin convenience wrapper for calling JSON REST
// APIs.
//
// The client wraps [github.com/go-resty/resty/v2] with a fixed base URL,
// default headers and query parameters, a bounded retry policy, and a
// single structured error type. A [Session] layers a login/logout
// lifecycle on top of the client.
//
// # Basic Usage
//
//	c, err := restclient.New("https://api.example.com",
//	    restclient.WithAuthToken("my-token"),
//	    restclient.WithRetryCount(3),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	result, err := c.Get(ctx, "posts/1", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For block-scoped lifecycles, [Use] constructs a client, runs a function
// with it, and releases the client's connections on every exit path.
//
// # Configuration
//
// All configuration is supplied as [Option] functions passed to [New].
// Invalid values are silently ignored and the default is retained;
// forced-invalid states are caught by [Options.Validate] during [New].
// The same surface can be loaded declaratively from YAML and environment
// variables via [LoadConfig] and [NewFromConfig].
//
// # Retry Behaviour
//
// [DefaultRetryPolicy] retries only on 5xx server errors, up to the
// configured retry count (default 3 retries, 4 total attempts) with
// exponential backoff. 4xx responses and transport-level failures (DNS,
// connection refused, timeout) fail immediately. Supply a custom function
// via [WithRetryPolicy], or use [TransientRetryPolicy], to extend this.
//
// # Errors
//
// Every failure surfaces as an [*APIError] carrying a message and, when an
// HTTP response was received, its status code. Callers distinguish failure
// kinds by inspecting the status code, or with the IsTransport,
// IsClientError, and IsServerError helpers.
//
// # Authentication
//
// Token-based authentication is configured with [WithAuthToken] (and
// optionally [WithAuthScheme]). HTTP Basic authentication is configured
// with [WithBasicAuth]. The two methods are mutually exclusive. For APIs
// with an explicit login/logout exchange, wrap the calls with [Session]
// and the [Login], [Logout], and [RequireAuth] combinators.
//
// # Logging
//
// Implement [RequestLogger] and supply it via [WithRequestLogger] to
// integrate with your logging library, or use [NewZerologLogger] for a
// ready-made zerolog adapter. The default [NoopLogger] discards all log
// output. The library never logs outside the supplied logger.
package restclient
