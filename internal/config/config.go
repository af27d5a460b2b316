// Package config resolves runtime settings from the environment, with
// flag values layered on top by the CLI.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"

	"github.com/quizdrill/quizdrill/internal/progress"
)

// DefaultBank is the bank file used when nothing else is configured.
const DefaultBank = "bank.json"

// Config controls runtime behavior for the CLI and the TUI.
type Config struct {
	// Bank is the question bank file to load.
	Bank string `env:"QUIZDRILL_BANK"`

	// DB is the progress database path.
	DB string `env:"QUIZDRILL_DB"`

	// LogLevel adjusts CLI logging: debug, info, warn or error.
	LogLevel string `env:"QUIZDRILL_LOG_LEVEL" envDefault:"warn"`
}

// Load reads the environment into a Config and fills the path
// defaults: ./bank.json for the bank, the XDG data dir for the
// database.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Bank == "" {
		cfg.Bank = DefaultBank
	}
	if cfg.DB == "" {
		p, err := progress.DefaultDBPath()
		if err != nil {
			return Config{}, err
		}
		cfg.DB = p
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the app would choke on.
func (c *Config) Validate() error {
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}
