// Package config loads settings for the console and the dev backend from
// the environment, after reading an optional .env file.
package config

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIURL is used when API_URL is not set: the /api prefix of a
	// backend on the local machine.
	DefaultAPIURL = "http://localhost:3000/api"

	DefaultPollInterval   = 30 * time.Second
	DefaultRequestTimeout = 15 * time.Second
	DefaultStore          = "sqlite"
)

// Config holds the console settings.
type Config struct {
	APIURL         string
	StoreKind      string
	StatePath      string
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

// ServerConfig holds the dev backend settings.
type ServerConfig struct {
	Addr         string
	DatabaseURL  string
	JWTSecret    string
	GeminiAPIKey string
}

// LoadEnv reads .env into the process environment. A missing file is not an
// error; variables already set win.
func LoadEnv(logger *log.Logger) {
	if err := godotenv.Load(); err != nil {
		logger.Println("No .env file loaded, using environment variables")
	}
}

// Load builds the console configuration from the environment.
func Load() Config {
	cfg := Config{
		APIURL:         getenv("API_URL", DefaultAPIURL),
		StoreKind:      getenv("POSADMIN_STORE", DefaultStore),
		StatePath:      os.Getenv("POSADMIN_STATE"),
		PollInterval:   duration("POSADMIN_POLL_INTERVAL", DefaultPollInterval),
		RequestTimeout: duration("POSADMIN_REQUEST_TIMEOUT", DefaultRequestTimeout),
	}
	if cfg.StatePath == "" {
		cfg.StatePath = DefaultStatePath(cfg.StoreKind)
	}
	return cfg
}

// DefaultStatePath returns where the session is kept for a store kind:
// a database file for sqlite, a directory for file.
func DefaultStatePath(kind string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	dir = filepath.Join(dir, "posadmin")
	if kind == "sqlite" {
		return filepath.Join(dir, "state.db")
	}
	return dir
}

// LoadServer builds the dev backend configuration from the environment.
func LoadServer() (ServerConfig, error) {
	cfg := ServerConfig{
		Addr:         ":" + getenv("PORT", "3000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
	}
	if cfg.JWTSecret == "" {
		return cfg, errors.New("JWT_SECRET is not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Ignoring invalid %s=%q: using %s", key, v, fallback)
		return fallback
	}
	return d
}
