package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all birthdayd configuration. Values are parsed from
// environment variables with the BIRTHDAYD_ prefix, e.g.
// BIRTHDAYD_HTTP_PORT, BIRTHDAYD_EMAIL_ADDRESS.
type Config struct {
	// HTTP API
	HTTPBind string `envconfig:"HTTP_BIND" default:"127.0.0.1"`
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8030"`

	// Database path. Empty means the default under the user home dir,
	// resolved at runtime via store.DefaultDBPath().
	DBPath string `envconfig:"DB_PATH" default:""`

	// Cron spec driving the matching cycle. Standard 5-field syntax;
	// the default fires at the top of every hour so rule hours line up
	// with wall-clock hours.
	CronSpec string `envconfig:"CRON_SPEC" default:"0 * * * *"`

	// Outbound email transport. Reminders are sent from and to
	// EmailAddress. Missing credentials disable sending without
	// failing the daemon.
	SMTPHost      string `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort      int    `envconfig:"SMTP_PORT" default:"465"`
	EmailAddress  string `envconfig:"EMAIL_ADDRESS" default:""`
	EmailPassword string `envconfig:"EMAIL_PASSWORD" default:""`
}

// New parses configuration from the environment.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("BIRTHDAYD", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP_PORT: %d", cfg.HTTPPort)
	}
	if cfg.CronSpec == "" {
		return nil, fmt.Errorf("CRON_SPEC must not be empty")
	}
	return &cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.HTTPBind, c.HTTPPort)
}
