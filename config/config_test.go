package config_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posadmin/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_URL", "")
	t.Setenv("POSADMIN_STORE", "")
	t.Setenv("POSADMIN_STATE", "")
	t.Setenv("POSADMIN_POLL_INTERVAL", "")
	t.Setenv("POSADMIN_REQUEST_TIMEOUT", "")

	cfg := config.Load()
	assert.Equal(t, config.DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "sqlite", cfg.StoreKind)
	assert.Equal(t, "state.db", filepath.Base(cfg.StatePath))
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_URL", "https://pos.example.com/api")
	t.Setenv("POSADMIN_STORE", "file")
	t.Setenv("POSADMIN_STATE", "/tmp/posadmin")
	t.Setenv("POSADMIN_POLL_INTERVAL", "5s")
	t.Setenv("POSADMIN_REQUEST_TIMEOUT", "not-a-duration")

	cfg := config.Load()
	assert.Equal(t, "https://pos.example.com/api", cfg.APIURL)
	assert.Equal(t, "file", cfg.StoreKind)
	assert.Equal(t, "/tmp/posadmin", cfg.StatePath)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, config.DefaultRequestTimeout, cfg.RequestTimeout)
}

func TestLoadServerRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := config.LoadServer()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8081")
	cfg, err := config.LoadServer()
	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.Addr)
}
