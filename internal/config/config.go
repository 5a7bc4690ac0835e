// Package config loads CLI settings from the environment, optionally seeded
// from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds the storefront CLI settings.
type Config struct {
	APIBaseURL    string        `env:"STOREFRONT_API_URL"`
	Token         string        `env:"STOREFRONT_TOKEN"`
	UserID        string        `env:"STOREFRONT_USER_ID"`
	VendorID      string        `env:"STOREFRONT_VENDOR_ID"`
	Timeout       time.Duration `env:"STOREFRONT_TIMEOUT"`
	LogLevel      string        `env:"STOREFRONT_LOG_LEVEL"`
	LogFormat     string        `env:"STOREFRONT_LOG_FORMAT"`
	MaxImageBytes int64         `env:"STOREFRONT_MAX_IMAGE_BYTES"`
	FormDefsDir   string        `env:"STOREFRONT_FORMDEFS_DIR"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		APIBaseURL:    "http://127.0.0.1:8000/api/v1/",
		Timeout:       30 * time.Second,
		LogLevel:      "info",
		LogFormat:     "console",
		MaxImageBytes: 10 << 20,
	}
}

// Load applies envFile (when it exists) and STOREFRONT_* variables on top of
// Defaults. A missing envFile is not an error; variables already set in the
// environment win over the file.
func Load(envFile string) (Config, error) {
	if path := strings.TrimSpace(envFile); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	cfg := Defaults()
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("config: decode environment: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return errors.New("config: STOREFRONT_API_URL is required")
	}
	if c.Timeout < 0 {
		return errors.New("config: STOREFRONT_TIMEOUT must not be negative")
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}
