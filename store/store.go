// Package store persists the console's session in durable client-side
// key-value storage.
//
// A Store keeps at most one session, under the fixed key SessionKey. Reads
// are forgiving: data that cannot be decoded, or a session whose token is
// missing or expired, is reported as absent rather than as an error.
package store

import (
	"encoding/json"
	"sync"
	"time"

	"posadmin/models"
)

// SessionKey is the key the session is stored under.
const SessionKey = "cv_user"

// Store is the session contract consumed by the API client, the login flow
// and the dashboard poller.
type Store interface {
	// Save replaces the current session.
	Save(s *models.Session) error

	// Load returns the current session, or false if there is none or the
	// stored data is unusable.
	Load() (*models.Session, bool)

	// Clear removes the current session. Clearing an absent session is a
	// no-op.
	Clear() error
}

// KV is a durable key-value backend.
type KV interface {
	// Get returns the value stored under key and whether it was found.
	Get(key string) (data []byte, found bool, err error)

	// Set stores data under key, overwriting any previous value.
	Set(key string, data []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// SessionStore is a Store backed by a KV.
// It is safe for concurrent use by multiple goroutines.
type SessionStore struct {
	mu  sync.Mutex
	kv  KV
	now func() time.Time
}

var _ Store = (*SessionStore)(nil)

// New creates a SessionStore on top of kv.
func New(kv KV) *SessionStore {
	return &SessionStore{kv: kv, now: time.Now}
}

// Save serializes s as JSON and writes it under SessionKey.
func (s *SessionStore) Save(sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Set(SessionKey, data)
}

// Load reads the session. Backend errors, corrupted JSON and sessions
// without a usable token all read as absent.
func (s *SessionStore) Load() (*models.Session, bool) {
	s.mu.Lock()
	data, found, err := s.kv.Get(SessionKey)
	s.mu.Unlock()

	if err != nil || !found || len(data) == 0 {
		return nil, false
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, false
	}
	if !sess.Valid(s.now()) {
		return nil, false
	}
	return &sess, true
}

// Clear deletes the session.
func (s *SessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(SessionKey)
}
