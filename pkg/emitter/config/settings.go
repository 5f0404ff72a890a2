package config

import (
	"fmt"
	"time"
)

// Recognised configuration keys.
const (
	KeyName             = "name"
	KeyMetrics          = "metrics"
	KeyMetricsBackend   = "metrics_backend"
	KeyTracing          = "tracing"
	KeyLogLevel         = "log_level"
	KeyFailureStore     = "failure_store"
	KeyFailureStorePath = "failure_store_path"
	KeyScrollThrottle   = "scroll_throttle"
)

// Metrics backends.
const (
	BackendOTel       = "otel"
	BackendPrometheus = "prometheus"
)

// Failure store kinds. An empty kind disables the journal.
const (
	StoreNone   = ""
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Defaults applied by Settings.
const (
	DefaultName             = "default"
	DefaultLogLevel         = "info"
	DefaultFailureStorePath = "failures.db"
	DefaultScrollThrottle   = 100 * time.Millisecond
)

// Settings is the resolved view of a Config with defaults applied.
type Settings struct {
	Name             string
	Metrics          bool
	MetricsBackend   string
	Tracing          bool
	LogLevel         string
	FailureStore     string
	FailureStorePath string
	ScrollThrottle   time.Duration
}

// Settings resolves every recognised key, falling back to defaults.
func (c Config) Settings() Settings {
	return Settings{
		Name:             c.String(KeyName, DefaultName),
		Metrics:          c.Bool(KeyMetrics, false),
		MetricsBackend:   c.String(KeyMetricsBackend, BackendOTel),
		Tracing:          c.Bool(KeyTracing, false),
		LogLevel:         c.String(KeyLogLevel, DefaultLogLevel),
		FailureStore:     c.String(KeyFailureStore, StoreNone),
		FailureStorePath: c.String(KeyFailureStorePath, DefaultFailureStorePath),
		ScrollThrottle:   c.Duration(KeyScrollThrottle, DefaultScrollThrottle),
	}
}

// Validate reports the first setting with an unsupported value.
func (s Settings) Validate() error {
	switch s.MetricsBackend {
	case BackendOTel, BackendPrometheus:
	default:
		return fmt.Errorf("%s: unsupported backend %q", KeyMetricsBackend, s.MetricsBackend)
	}
	switch s.FailureStore {
	case StoreNone, StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("%s: unsupported store %q", KeyFailureStore, s.FailureStore)
	}
	if s.FailureStore == StoreSQLite && s.FailureStorePath == "" {
		return fmt.Errorf("%s: path required for sqlite store", KeyFailureStorePath)
	}
	if s.ScrollThrottle < 0 {
		return fmt.Errorf("%s: must not be negative", KeyScrollThrottle)
	}
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s: unsupported level %q", KeyLogLevel, s.LogLevel)
	}
	return nil
}
