package config

import (
	"log/slog"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Backend API client configuration
//   - auth.go: Session keys, navigation paths and 401 handling
//   - storage.go: Durable session storage and Redis configuration
//   - validation.go: Form validation limits
type AppConfig struct {
	// IsDev controls development mode behavior (debug logging).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// NodeEnv is the frontend tooling environment name; "development" or "dev"
	// also enables development mode.
	NodeEnv string `env:"NODE_ENV"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Backend API client configuration
	API APIConfig

	// Session and navigation configuration
	Auth AuthConfig

	// Durable storage configuration
	Storage StorageConfig `envPrefix:"STORAGE_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`

	// Form validation configuration
	Validation ValidationConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Auth.Sanitize()
	c.Storage.Sanitize()
	c.Redis.Sanitize()
	c.Validation.Sanitize()

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode falls back to NODE_ENV when DEV is not set.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(strings.TrimSpace(c.NodeEnv))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// SlogLevel maps LogLevel to a slog level. Dev mode always logs at debug.
func (c *AppConfig) SlogLevel() slog.Level {
	if c.IsDev {
		return slog.LevelDebug
	}
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
