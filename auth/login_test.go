package auth_test

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/api"
	"posadmin/auth"
	"posadmin/models"
	"posadmin/nav"
	"posadmin/store"
)

var quiet = log.New(io.Discard, "", 0)

type authFunc func(ctx context.Context, username, password string) (*models.Session, error)

func (f authFunc) Login(ctx context.Context, username, password string) (*models.Session, error) {
	return f(ctx, username, password)
}

type emptyError struct{}

func (emptyError) Error() string { return "" }

func TestSubmitRoutesByRole(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{"ADMIN", nav.DashboardPath},
		{"admin", nav.DashboardPath},
		{"CASHIER", nav.POSPath},
		{"", nav.POSPath},
	}

	for _, c := range cases {
		router := nav.NewRouter(nav.LoginPath)
		flow := auth.NewLoginFlow(authFunc(func(context.Context, string, string) (*models.Session, error) {
			return &models.Session{Token: "tok", Role: c.role}, nil
		}), router, quiet)

		res, err := flow.Submit(context.Background(), "user", "pw")
		require.NoError(t, err)
		assert.Equal(t, c.want, res.Destination, "role %q", c.role)
		assert.Equal(t, c.want, router.Location())
		assert.Empty(t, res.Message)
	}
}

func TestSubmitIsNotReentrant(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0

	flow := auth.NewLoginFlow(authFunc(func(context.Context, string, string) (*models.Session, error) {
		calls++
		close(started)
		<-release
		return nil, errors.New("nope")
	}), nav.NewRouter(nav.LoginPath), quiet)

	done := make(chan struct{})
	go func() {
		defer close(done)
		flow.Submit(context.Background(), "user", "pw")
	}()

	<-started
	assert.True(t, flow.InFlight())
	_, err := flow.Submit(context.Background(), "user", "pw")
	assert.ErrorIs(t, err, auth.ErrSubmitInFlight)

	close(release)
	<-done
	assert.False(t, flow.InFlight())
	assert.Equal(t, 1, calls)
}

func TestUnreachableBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := store.New(store.NewMemory())
	client := api.New(url, s, api.WithLogger(quiet))
	router := nav.NewRouter(nav.LoginPath)
	flow := auth.NewLoginFlow(auth.NewService(client, s), router, quiet)

	res, err := flow.Submit(context.Background(), "owner", "pw")
	require.Error(t, err)
	assert.Equal(t, auth.MsgUnreachable, res.Message)
	assert.False(t, flow.InFlight())
	assert.Equal(t, nav.LoginPath, router.Location())
}

func TestFailureMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"not found", &api.APIError{Status: 404}, auth.MsgUnreachable},
		{"unreachable", api.ErrUnreachable, auth.MsgUnreachable},
		{"payload", &api.APIError{Status: 401, Payload: &models.ErrorPayload{Message: "Invalid credentials"}}, "Invalid credentials"},
		{"status only", &api.APIError{Status: 500}, "request failed with status code 500"},
		{"plain", errors.New("context deadline exceeded"), "context deadline exceeded"},
		{"empty", emptyError{}, auth.MsgLoginFailed},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, auth.FailureMessage(c.err))
		})
	}
}

func TestServiceLoginPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token":"tok","role":"ADMIN","username":"owner"}`))
	}))
	defer srv.Close()

	s := store.New(store.NewMemory())
	svc := auth.NewService(api.New(srv.URL, s, api.WithLogger(quiet)), s)

	sess, err := svc.Login(context.Background(), "owner", "pw")
	require.NoError(t, err)
	assert.Equal(t, "owner", sess.Username)

	stored, ok := svc.Current()
	require.True(t, ok)
	assert.Equal(t, "tok", stored.Token)

	require.NoError(t, svc.Logout())
	_, ok = svc.Current()
	assert.False(t, ok)
}

func TestServiceLoginRejectsMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"role":"ADMIN"}`))
	}))
	defer srv.Close()

	s := store.New(store.NewMemory())
	svc := auth.NewService(api.New(srv.URL, s, api.WithLogger(quiet)), s)

	_, err := svc.Login(context.Background(), "owner", "pw")
	assert.ErrorIs(t, err, auth.ErrNoToken)
}
