package api

import (
	"log"
	"net/http"

	"github.com/google/uuid"

	"posadmin/store"
)

// Middleware wraps the transport used for outbound calls. A middleware may
// inspect or mutate the request before calling next, and inspect the
// response or error after.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain composes middlewares around base. The first middleware is the
// outermost one and sees the request first.
func Chain(base http.RoundTripper, mws ...Middleware) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	for i := len(mws) - 1; i >= 0; i-- {
		base = mws[i](base)
	}
	return base
}

// RequestID tags every request with an X-Request-ID header unless one is set.
func RequestID() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.Header.Get("X-Request-ID") == "" {
				r = r.Clone(r.Context())
				r.Header.Set("X-Request-ID", uuid.NewString())
			}
			return next.RoundTrip(r)
		})
	}
}

// LogRequests logs the method and full URL of every outbound request.
func LogRequests(logger *log.Logger) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			logger.Printf("[API Request] %s %s", r.Method, r.URL)
			return next.RoundTrip(r)
		})
	}
}

// Bearer attaches the current session token as a bearer credential. When
// there is no session the request goes out unauthenticated.
func Bearer(s store.Store) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if sess, ok := s.Load(); ok {
				r = r.Clone(r.Context())
				r.Header.Set("Authorization", "Bearer "+sess.Token)
			}
			return next.RoundTrip(r)
		})
	}
}
