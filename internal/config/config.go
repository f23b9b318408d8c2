// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	LogLevel          string `env:"LOG_LEVEL" envDefault:"info"`
	DestinationPath   string `env:"DESTINATION_PATH"`
	HistoryEnabled    bool   `env:"HISTORY_ENABLED" envDefault:"true"`
	HistoryDBPath     string `env:"HISTORY_DB_PATH" envDefault:"extractions.db"`
	ContainEntryPaths bool   `env:"CONTAIN_ENTRY_PATHS" envDefault:"true"`
	StrictSplitNames  bool   `env:"STRICT_SPLIT_NAMES" envDefault:"false"`
	UseStaging        bool   `env:"USE_STAGING" envDefault:"false"`
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	logLevel := strings.ToLower(c.LogLevel)
	isValidLevel := false
	for _, level := range validLogLevels {
		if logLevel == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("invalid log level %q, must be one of: %v", c.LogLevel, validLogLevels)
	}

	if c.HistoryEnabled && c.HistoryDBPath == "" {
		return fmt.Errorf("HISTORY_DB_PATH cannot be empty while history is enabled")
	}

	// The destination is optional; the CLI falls back to the working directory
	if c.DestinationPath == "" {
		return nil
	}

	cleanPath := filepath.Clean(c.DestinationPath)
	if !filepath.IsAbs(cleanPath) {
		return fmt.Errorf("DESTINATION_PATH must be an absolute path, got: %s", c.DestinationPath)
	}

	// Check if path exists and is a directory (only if it exists)
	if info, err := os.Stat(cleanPath); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("DESTINATION_PATH must be a directory, got file: %s", cleanPath)
		}
	}

	c.DestinationPath = cleanPath

	return nil
}
