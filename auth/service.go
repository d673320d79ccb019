// Package auth logs the operator in and out of the POS backend.
package auth

import (
	"context"
	"errors"
	"fmt"

	"posadmin/api"
	"posadmin/models"
	"posadmin/store"
)

// ErrNoToken is returned when the backend accepts the credentials but sends
// back no token.
var ErrNoToken = errors.New("login response did not include a token")

// Authenticator exchanges credentials for a persisted session.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
}

// Service is the Authenticator backed by the API client.
type Service struct {
	client *api.Client
	store  store.Store
}

var _ Authenticator = (*Service)(nil)

// NewService creates a Service.
func NewService(client *api.Client, s store.Store) *Service {
	return &Service{client: client, store: s}
}

// Login authenticates and saves the resulting session.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Session, error) {
	resp, err := s.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	sess := resp.Session()
	if sess.Token == "" {
		return nil, ErrNoToken
	}
	if err := s.store.Save(sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

// Logout forgets the current session.
func (s *Service) Logout() error {
	return s.store.Clear()
}

// Current returns the stored session, if it is still usable.
func (s *Service) Current() (*models.Session, bool) {
	return s.store.Load()
}
