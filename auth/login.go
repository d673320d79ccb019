package auth

import (
	"context"
	"errors"
	"log"
	"sync/atomic"

	"posadmin/api"
	"posadmin/models"
	"posadmin/nav"
)

// Messages shown for a failed login.
const (
	MsgUnreachable = "Backend server is not reachable. Please ensure the API server is running and check your API configuration."
	MsgLoginFailed = "Login failed. Please check your credentials and try again."
)

// ErrSubmitInFlight is returned by Submit while a previous attempt is still
// running.
var ErrSubmitInFlight = errors.New("login already in progress")

// Navigator is the navigation collaborator of the login flow.
type Navigator interface {
	Navigate(path string)
}

// Result is the outcome of one login attempt.
type Result struct {
	Session     *models.Session
	Destination string
	// Message is the single user-facing message of a failed attempt.
	Message string
}

// LoginFlow drives the login form: one submission at a time, a classified
// message on failure, a role-based redirect on success.
type LoginFlow struct {
	auth     Authenticator
	nav      Navigator
	logger   *log.Logger
	inFlight atomic.Bool
}

// NewLoginFlow creates a LoginFlow.
func NewLoginFlow(a Authenticator, n Navigator, logger *log.Logger) *LoginFlow {
	if logger == nil {
		logger = log.Default()
	}
	return &LoginFlow{auth: a, nav: n, logger: logger}
}

// InFlight reports whether a submission is running, i.e. whether the submit
// control is disabled.
func (f *LoginFlow) InFlight() bool {
	return f.inFlight.Load()
}

// Submit attempts a login. It returns ErrSubmitInFlight without contacting
// the backend if another attempt has not settled yet. Any other returned
// error is the raw login failure; res.Message then holds what to show.
func (f *LoginFlow) Submit(ctx context.Context, username, password string) (Result, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrSubmitInFlight
	}
	defer f.inFlight.Store(false)

	sess, err := f.auth.Login(ctx, username, password)
	if err != nil {
		f.logger.Printf("Login error: %v", err)
		return Result{Message: FailureMessage(err)}, err
	}

	dest := nav.LandingPath(sess)
	f.nav.Navigate(dest)
	return Result{Session: sess, Destination: dest}, nil
}

// FailureMessage picks the message to show for a failed login.
func FailureMessage(err error) string {
	if api.IsConnectivityError(err) || errors.Is(err, api.ErrNotFound) {
		return MsgUnreachable
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message() != "" {
		return apiErr.Message()
	}

	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return MsgLoginFailed
}
