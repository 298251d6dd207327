// Package config loads the process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds the service configuration.
type Config struct {
	// HTTPPort is the port the REST API listens on (default: 8080)
	HTTPPort int

	// DBPath is the SQLite database file (default: "./tasks.db")
	DBPath string

	// DBDebug enables GORM statement logging
	DBDebug bool

	// AuthUsername and AuthPassword form the single accepted credential
	AuthUsername string
	AuthPassword string

	// BcryptCost is the cost used to hash AuthPassword at startup
	BcryptCost int

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration

	// LogLevel is "info" or "error"
	LogLevel string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		HTTPPort:        8080,
		DBPath:          "./tasks.db",
		DBDebug:         false,
		AuthUsername:    "admin",
		AuthPassword:    "admin",
		BcryptCost:      bcrypt.DefaultCost,
		ShutdownTimeout: 30 * time.Second,
		LogLevel:        "info",
	}
}

// Option is a function that modifies Config.
type Option func(*Config)

// WithHTTPPort sets the HTTP listen port.
func WithHTTPPort(port int) Option {
	return func(c *Config) {
		c.HTTPPort = port
	}
}

// WithDBPath sets the SQLite database path.
func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

// WithCredentials sets the accepted username and password.
func WithCredentials(username, password string) Option {
	return func(c *Config) {
		c.AuthUsername = username
		c.AuthPassword = password
	}
}

// WithBcryptCost sets the bcrypt cost.
func WithBcryptCost(cost int) Option {
	return func(c *Config) {
		c.BcryptCost = cost
	}
}

// Load reads the configuration from environment variables, falling back to
// defaults, then applies opts.
func Load(opts ...Option) (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		HTTPPort:        getEnvInt("HTTP_PORT", def.HTTPPort),
		DBPath:          getEnv("DB_PATH", def.DBPath),
		DBDebug:         getEnv("DB_DEBUG", "false") == "true",
		AuthUsername:    getEnv("AUTH_USERNAME", def.AuthUsername),
		AuthPassword:    getEnv("AUTH_PASSWORD", def.AuthPassword),
		BcryptCost:      getEnvInt("AUTH_BCRYPT_COST", def.BcryptCost),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", def.ShutdownTimeout),
		LogLevel:        getEnv("LOG_LEVEL", def.LogLevel),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.DBPath == "" {
		return errors.New("database path is required")
	}
	if c.AuthUsername == "" {
		return errors.New("auth username is required")
	}
	if c.AuthPassword == "" {
		return errors.New("auth password is required")
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost %d out of range [%d, %d]", c.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout: %s", c.ShutdownTimeout)
	}
	switch c.LogLevel {
	case "info", "error":
	default:
		return fmt.Errorf("unsupported log level: %q", c.LogLevel)
	}
	return nil
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
