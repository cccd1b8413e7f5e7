package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// defaultsYAML holds the built-in defaults, loaded before any file or
// environment override.
var defaultsYAML = []byte(`
server:
  host: localhost
  port: 8750
  shutdown_timeout: 10s
  rate_limit: 50
  rate_burst: 100
store:
  provider: file
  file:
    path: earshot.json
classifier:
  policy_path: ""
  watch: false
events:
  enabled: false
  url: nats://localhost:4222
  subject_prefix: earshot
logging:
  level: info
  format: json
observability:
  enable_telemetry: false
  service_name: earshot
  otlp_endpoint: localhost:4317
`)

// Load builds configuration from built-in defaults, an optional YAML file,
// and EARSHOT_-prefixed environment variables, in increasing precedence.
//
// Environment variables map section and field with a double underscore:
//
//	EARSHOT_SERVER__PORT          -> server.port
//	EARSHOT_STORE__PROVIDER       -> store.provider
//	EARSHOT_STORE__POSTGRES__DSN  -> store.postgres.dsn
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("EARSHOT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "EARSHOT_")
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
