package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// dotenvPath is the development .env file; a test seam.
var dotenvPath = ".env"

// legacyEnv holds variable names kept for compatibility with existing
// deployments of the chat widget backend.
type legacyEnv struct {
	Port     string `env:"PORT"`
	MongoURI string `env:"MONGO_URI"`
}

// parseEnv loads .env when present (without overriding variables that are
// already set) and overlays every tagged field whose variable is non-empty.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var legacy legacyEnv
	if err := env.Parse(&legacy); err != nil {
		return err
	}
	if legacy.Port != "" {
		cfg.HTTPAddr = ":" + legacy.Port
	}
	if legacy.MongoURI != "" {
		cfg.DatabaseDSN = legacy.MongoURI
	}

	return env.Parse(cfg)
}
