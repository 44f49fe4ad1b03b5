package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	// Seed fixes the random source. Zero picks a fresh seed per run.
	Seed      int64         `env:"COURIER_SEED" envDefault:"0"`
	TextSpeed time.Duration `env:"COURIER_TEXT_SPEED" envDefault:"20ms"`
	Plain     bool          `env:"COURIER_PLAIN" envDefault:"false"`
	NoColor   bool          `env:"COURIER_NO_COLOR" envDefault:"false"`
	LogFile   string        `env:"COURIER_LOG_FILE"`
	LogLevel  string        `env:"COURIER_LOG_LEVEL" envDefault:"info"`

	// NoColorStandard honours the cross-tool NO_COLOR convention.
	NoColorStandard bool `env:"NO_COLOR" envDefault:"false"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TextSpeed < 0 {
		return nil, fmt.Errorf("COURIER_TEXT_SPEED must not be negative, got %s", cfg.TextSpeed)
	}
	return &cfg, nil
}

// Colorless reports whether styling should be stripped.
func (c *Config) Colorless() bool {
	return c.NoColor || c.NoColorStandard
}
