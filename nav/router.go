// Package nav tracks where the console currently is and performs the two
// navigations the session lifecycle needs: back to the login screen when
// the session expires, and to a role-specific landing page after login.
package nav

import (
	"errors"
	"sync"

	"posadmin/api"
	"posadmin/models"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
	POSPath       = "/pos"
)

// OrderPath is the detail location of an order.
func OrderPath(id string) string {
	return "/orders/" + id
}

// LandingPath returns where a freshly logged in session should go.
func LandingPath(s *models.Session) string {
	if s.IsAdmin() {
		return DashboardPath
	}
	return POSPath
}

// Router holds the current location. It is safe for concurrent use.
type Router struct {
	mu        sync.Mutex
	location  string
	listeners []func(string)
}

// NewRouter returns a Router positioned at start.
func NewRouter(start string) *Router {
	return &Router{location: start}
}

// Location returns the current location.
func (r *Router) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}

// Subscribe registers fn to be called after every navigation.
func (r *Router) Subscribe(fn func(path string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Navigate moves to path and notifies listeners.
func (r *Router) Navigate(path string) {
	r.mu.Lock()
	r.location = path
	listeners := append(([]func(string))(nil), r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(path)
	}
}

// HandleError reacts to an expired session by navigating to the login page,
// unless the router is already there. It reports whether err was a session
// expiry. Concurrent expiries navigate once.
func (r *Router) HandleError(err error) bool {
	if !errors.Is(err, api.ErrSessionExpired) {
		return false
	}

	r.mu.Lock()
	if r.location == LoginPath {
		r.mu.Unlock()
		return true
	}
	r.location = LoginPath
	listeners := append(([]func(string))(nil), r.listeners...)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(LoginPath)
	}
	return true
}
