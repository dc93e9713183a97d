// Package config loads server configuration from environment variables.
// CLI flags may override individual fields after Load (flag > env >
// default).
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the coordinator's runtime settings.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ADDR" envDefault:":8080"`

	// SeatCapacity is the number of seats in every room. Deployments run
	// 96 or 160 depending on the venue layout.
	SeatCapacity int `env:"SEAT_CAPACITY" envDefault:"96"`

	// SweepInterval is how often empty rooms are swept from the registry.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"5m"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// AllowedOrigins restricts websocket upgrades to the listed Origin
	// headers. Empty means allow all (development).
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SeatCapacity <= 0 {
		return nil, fmt.Errorf("seat capacity must be positive, got %d", cfg.SeatCapacity)
	}
	return &cfg, nil
}
