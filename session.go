package restclient

import "context"

// Session tracks the login lifecycle of a client. It holds a single
// boolean: whether a [Login]-wrapped call has completed since the last
// [Logout]-wrapped call or [Session.Reset].
//
// A Session performs no internal locking. Sharing one Session across
// goroutines requires external serialization by the caller.
type Session struct {
	client        *Client
	authenticated bool
	reauth        func(context.Context) error
}

// NewSession creates an unauthenticated session over the given client.
func NewSession(client *Client) *Session {
	return &Session{client: client}
}

// Client returns the client the session wraps.
func (s *Session) Client() *Client {
	return s.client
}

// IsAuthenticated reports whether a login has completed.
func (s *Session) IsAuthenticated() bool {
	return s.authenticated
}

// Reset forces the session back to the unauthenticated state without
// invoking any remote call.
func (s *Session) Reset() {
	s.authenticated = false
}

// SetReauthFunc registers a function that [RequireAuth]-wrapped calls run
// to re-establish authentication when the session is unauthenticated.
// Without it, guarded calls fail with [ErrNotAuthenticated].
func (s *Session) SetReauthFunc(fn func(context.Context) error) {
	s.reauth = fn
}

// Login wraps a credential-exchange function. The wrapped call invokes fn
// and marks the session authenticated when fn succeeds. If the session is
// already authenticated, fn is not invoked and the zero value is returned
// with a nil error, making login idempotent.
func Login[T any](s *Session, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		var zero T
		if s.authenticated {
			return zero, nil
		}

		result, err := fn(ctx)
		if err != nil {
			return zero, err
		}

		s.authenticated = true
		return result, nil
	}
}

// Logout wraps a logout function. The wrapped call invokes fn and marks
// the session unauthenticated regardless of fn's outcome; a remote logout
// failure must not leave the local state authenticated. If the session is
// already unauthenticated, fn is not invoked and the zero value is
// returned with a nil error.
func Logout[T any](s *Session, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		var zero T
		if !s.authenticated {
			return zero, nil
		}

		result, err := fn(ctx)
		s.authenticated = false
		return result, err
	}
}

// RequireAuth guards a function behind the session's auth state. When the
// session is unauthenticated, the wrapped call runs the registered re-auth
// function if one was set, and otherwise fails with [ErrNotAuthenticated]
// without invoking fn.
func RequireAuth[T any](s *Session, fn func(context.Context) (T, error)) func(context.Context) (T, error) {
	return func(ctx context.Context) (T, error) {
		var zero T
		if !s.authenticated {
			if s.reauth == nil {
				return zero, ErrNotAuthenticated
			}
			if err := s.reauth(ctx); err != nil {
				return zero, err
			}
			s.authenticated = true
		}

		return fn(ctx)
	}
}
