package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/models"
	"posadmin/store"
)

func backends(t *testing.T) map[string]store.KV {
	t.Helper()

	sqlite, err := store.OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]store.KV{
		"memory": store.NewMemory(),
		"file":   store.NewFile(t.TempDir()),
		"sqlite": sqlite,
	}
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := models.JwtClaims{
		UserID: "u-1",
		Role:   "ADMIN",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

func TestSaveLoad(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := store.New(kv)
			require.NoError(t, s.Save(&models.Session{Token: "abc123", Role: "ADMIN", Username: "owner"}))

			sess, ok := s.Load()
			require.True(t, ok)
			assert.Equal(t, "abc123", sess.Token)
			assert.Equal(t, "owner", sess.Username)
			assert.True(t, sess.IsAdmin())
		})
	}
}

func TestEmptyLoad(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			sess, ok := store.New(kv).Load()
			assert.False(t, ok)
			assert.Nil(t, sess)
		})
	}
}

func TestCorruptedDataLoadsAsAbsent(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.Set(store.SessionKey, []byte("{not json")))
			_, ok := store.New(kv).Load()
			assert.False(t, ok)
		})
	}
}

func TestSessionWithoutTokenLoadsAsAbsent(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(store.SessionKey, []byte(`{"role":"ADMIN","username":"owner"}`)))

	_, ok := store.New(kv).Load()
	assert.False(t, ok)
}

func TestExpiredTokenLoadsAsAbsent(t *testing.T) {
	s := store.New(store.NewMemory())
	require.NoError(t, s.Save(&models.Session{Token: signedToken(t, time.Now().Add(-time.Hour)), Role: "ADMIN"}))

	_, ok := s.Load()
	assert.False(t, ok)

	require.NoError(t, s.Save(&models.Session{Token: signedToken(t, time.Now().Add(time.Hour)), Role: "ADMIN"}))
	_, ok = s.Load()
	assert.True(t, ok)
}

func TestClearIsIdempotent(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := store.New(kv)
			require.NoError(t, s.Save(&models.Session{Token: "abc123", Role: "CASHIER"}))

			require.NoError(t, s.Clear())
			_, once := s.Load()

			require.NoError(t, s.Clear())
			_, twice := s.Load()

			assert.False(t, once)
			assert.Equal(t, once, twice)
		})
	}
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")

	db, err := store.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.New(db).Save(&models.Session{Token: "persisted", Role: "ADMIN"}))
	require.NoError(t, db.Close())

	db, err = store.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	sess, ok := store.New(db).Load()
	require.True(t, ok)
	assert.Equal(t, "persisted", sess.Token)
}
