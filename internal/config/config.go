package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const developmentEnv = "development"

// devSessionSecret is only accepted when APP_ENV is development.
const devSessionSecret = "recipebook-dev-secret"

var (
	ErrUnknownDriver = errors.New("unknown database driver")
	ErrMissingSecret = errors.New("SESSION_SECRET is required outside development")
	ErrInvalidMaxAge = errors.New("SESSION_MAX_AGE must be positive")
	ErrMissingDSN    = errors.New("DATABASE_DSN is required")
)

// Config holds process-wide settings for the recipebook server.
type Config struct {
	Env      string
	AppPort  string
	LogLevel string

	DBDriver    string
	DatabaseDSN string

	SessionSecret       string
	SessionCookieName   string
	SessionMaxAge       time.Duration
	SessionCookieSecure bool

	RabbitMQURL string
}

// IsDevelopment reports whether the server runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == developmentEnv
}

// Load reads an optional .env file, then environment variables, on top of
// the defaults below.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_ENV", developmentEnv)
	v.SetDefault("APP_PORT", ":5555")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "recipebook.db")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_COOKIE_NAME", "session")
	v.SetDefault("SESSION_MAX_AGE", "168h")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()
	return v
}

// FromViper builds and validates a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:                 v.GetString("APP_ENV"),
		AppPort:             v.GetString("APP_PORT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		DBDriver:            strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		SessionCookieName:   v.GetString("SESSION_COOKIE_NAME"),
		SessionMaxAge:       v.GetDuration("SESSION_MAX_AGE"),
		SessionCookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
	}

	if cfg.SessionSecret == "" && cfg.IsDevelopment() {
		cfg.SessionSecret = devSessionSecret
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.DBDriver)
	}
	if c.DatabaseDSN == "" {
		return ErrMissingDSN
	}
	if c.SessionSecret == "" {
		return ErrMissingSecret
	}
	if c.SessionMaxAge <= 0 {
		return ErrInvalidMaxAge
	}
	return nil
}
