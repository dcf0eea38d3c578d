package config

import (
	"github.com/caarlos0/env/v11"

	"addy/internal/config/configs"
)

// Config aggregates all configuration sections for the registry service.
// Fields are populated from environment variables using caarlos0/env; nested
// structs are tagged with envPrefix so their fields are parsed with the given
// prefix. Use Load to construct a Config.
type Config struct {
	// Env names the deployment environment (e.g. prod, dev). It is attached
	// to every log line.
	Env string `env:"ENV" envDefault:"prod"`

	// HTTP holds configuration for the HTTP server (HTTP_*).
	HTTP configs.HTTP `envPrefix:"HTTP_"`

	// Log configures the structured logger (LOG_*).
	Log configs.Logger `envPrefix:"LOG_"`

	// Psql configures the optional audit export database (PSQL_*).
	Psql configs.Postgres `envPrefix:"PSQL_"`

	// Registry holds the registry's authority addresses and limits (REGISTRY_*).
	Registry configs.Registry `envPrefix:"REGISTRY_"`

	// Export tunes the audit exporter queue (EXPORT_*).
	Export configs.Export `envPrefix:"EXPORT_"`
}

// Load reads configuration from environment variables into a Config. All
// fields fall back to their declared defaults when no variable is set.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
