// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load() to layer file/env.
// - External errors must be wrapped via this package's sentinel errors.
package config

import (
	"runtime"
)

// Store backend names accepted in Config.Store.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of grading workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// Store selects the grade store backend: memory, sqlite, postgres.
	Store string `koanf:"store"`

	// SQLitePath is the database file path for the sqlite backend.
	SQLitePath string `koanf:"sqlite_path"`

	// PostgresDSN is the connection string for the postgres backend.
	PostgresDSN string `koanf:"postgres_dsn"`

	// NATSURL enables the NATS notification broker when non-empty.
	NATSURL string `koanf:"nats_url"`

	// NATSSubject overrides the subject grade notifications publish on.
	NATSSubject string `koanf:"nats_subject"`

	// DefaultLeagueSize is assumed when a submission omits league_size.
	DefaultLeagueSize int `koanf:"default_league_size"`

	// ProjectionSeed seeds the mock point projector.
	ProjectionSeed int64 `koanf:"projection_seed"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:          "info",
		Addr:              ":9080",
		QueueSize:         10_000,
		WorkerCount:       runtime.NumCPU() * 2,
		DedupeSize:        50_000,
		Store:             StoreMemory,
		SQLitePath:        "draftgrade.db",
		DefaultLeagueSize: 12,
		ProjectionSeed:    42,
	}
	return c
}
