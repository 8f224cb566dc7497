// Package config holds runtime configuration, loaded from STARKILLER_*
// environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all starkiller configuration.
type Config struct {
	Bind        string `env:"STARKILLER_BIND" envDefault:"127.0.0.1"`
	Port        int    `env:"STARKILLER_PORT" envDefault:"8471"`
	DBPath      string `env:"STARKILLER_DB"`
	CatalogPath string `env:"STARKILLER_CATALOG"`
	// Seed fixes the campaign's randomness. Zero means pick one.
	Seed int64 `env:"STARKILLER_SEED"`
	// StartingCredits seeds the ledger on a fresh campaign.
	StartingCredits int64 `env:"STARKILLER_CREDITS" envDefault:"1000"`
	// AdvanceCron auto-advances the in-game day on a cron schedule while
	// the server runs. Empty disables auto-advance.
	AdvanceCron string `env:"STARKILLER_ADVANCE_CRON"`
}

// Load reads configuration from the environment on top of defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}
