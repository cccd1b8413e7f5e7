// Package config provides configuration loading for earshot.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Store         StoreConfig         `koanf:"store"`
	Classifier    ClassifierConfig    `koanf:"classifier"`
	Events        EventsConfig        `koanf:"events"`
	Logging       LoggingConfig       `koanf:"logging"`
	Observability ObservabilityConfig `koanf:"observability"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimit is the sustained requests/second allowed on the API group;
	// RateBurst is the token bucket size. RateLimit 0 disables limiting.
	RateLimit float64 `koanf:"rate_limit"`
	RateBurst int     `koanf:"rate_burst"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Provider is "file" (default, zero setup) or "postgres".
	Provider string         `koanf:"provider"`
	Postgres PostgresConfig `koanf:"postgres"`
	File     FileConfig     `koanf:"file"`
}

// PostgresConfig holds the remote database backend configuration.
type PostgresConfig struct {
	DSN Secret `koanf:"dsn"`
}

// FileConfig holds the local file backend configuration.
type FileConfig struct {
	Path string `koanf:"path"`
}

// ClassifierConfig holds classification policy configuration.
type ClassifierConfig struct {
	// PolicyPath points to an optional TOML file overriding the built-in tag
	// sets and keyword lists. Empty means built-in policy only.
	PolicyPath string `koanf:"policy_path"`

	// Watch reloads the policy file on change.
	Watch bool `koanf:"watch"`
}

// EventsConfig holds NATS event publication configuration.
type EventsConfig struct {
	Enabled       bool   `koanf:"enabled"`
	URL           string `koanf:"url"`
	SubjectPrefix string `koanf:"subject_prefix"`
}

// LoggingConfig holds logger configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
}

// ObservabilityConfig holds OpenTelemetry configuration.
type ObservabilityConfig struct {
	EnableTelemetry bool   `koanf:"enable_telemetry"`
	ServiceName     string `koanf:"service_name"`
	OTLPEndpoint    string `koanf:"otlp_endpoint"`
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	switch c.Store.Provider {
	case "file", "postgres":
	default:
		return fmt.Errorf("store.provider must be file or postgres, got %q", c.Store.Provider)
	}
	if c.Store.Provider == "postgres" && !c.Store.Postgres.DSN.IsSet() {
		return fmt.Errorf("store.postgres.dsn is required for the postgres provider")
	}
	if c.Store.Provider == "file" && c.Store.File.Path == "" {
		return fmt.Errorf("store.file.path is required for the file provider")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return fmt.Errorf("events.url is required when events are enabled")
	}
	if c.Classifier.Watch && c.Classifier.PolicyPath == "" {
		return fmt.Errorf("classifier.policy_path is required when watch is enabled")
	}
	return nil
}
