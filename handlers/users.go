package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"posadmin/utils"
)

// ErrUserNotFound is returned when no account has the given username.
var ErrUserNotFound = errors.New("user not found")

// Account is a backend user with its password hash.
type Account struct {
	ID           string
	Username     string
	Name         string
	Email        string
	Role         string
	PasswordHash string
	IsActive     bool
}

// UserStore looks accounts up by username.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*Account, error)
}

// MemoryUsers is an in-memory UserStore.
type MemoryUsers struct {
	mu       sync.RWMutex
	cost     int
	accounts map[string]*Account
}

// NewMemoryUsers returns an empty store hashing passwords with the given
// bcrypt cost (bcrypt.DefaultCost when cost is 0).
func NewMemoryUsers(cost int) *MemoryUsers {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &MemoryUsers{cost: cost, accounts: make(map[string]*Account)}
}

// Add creates an active account.
func (m *MemoryUsers) Add(username, password, name, role string) (*Account, error) {
	normalized, ok := utils.ValidateAndNormalizeRole(role)
	if !ok {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return nil, fmt.Errorf("could not process password: %w", err)
	}

	acct := &Account{
		ID:           uuid.NewString(),
		Username:     username,
		Name:         name,
		Role:         normalized,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.accounts[strings.ToLower(username)]; exists {
		return nil, fmt.Errorf("user %q already exists", username)
	}
	m.accounts[strings.ToLower(username)] = acct
	return acct, nil
}

// Deactivate marks an account inactive.
func (m *MemoryUsers) Deactivate(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if acct, ok := m.accounts[strings.ToLower(username)]; ok {
		acct.IsActive = false
	}
}

func (m *MemoryUsers) FindByUsername(_ context.Context, username string) (*Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acct, ok := m.accounts[strings.ToLower(username)]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *acct
	return &cp, nil
}
