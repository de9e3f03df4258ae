package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Default data file, kept compatible with existing installations.
const defaultDataFile = "events.data"

// Config holds all configuration for the application
type Config struct {
	DataFile    string
	Environment string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		DataFile:    os.Getenv("EVENTS_FILE"),
	}

	if cfg.DataFile == "" {
		cfg.DataFile = defaultDataFile
	}

	return cfg, nil
}
