// Package config provides configuration management using Viper
package config

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName      string   `mapstructure:"appname"`
	AppPort      string   `mapstructure:"appport"`
	Environment  string   `mapstructure:"environment"`
	LogLevel     LogLevel `mapstructure:"loglevel"`
	JWTSecret    string   `mapstructure:"jwtsecret"`
	TokenTTLDays int      `mapstructure:"tokenttldays"`

	// File paths
	DatabasePath string `mapstructure:"storagepath"`
	DatabaseName string `mapstructure:"-"` // Derived from other settings
	GeoDBPath    string `mapstructure:"geodbpath"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseMaxOpenConns int `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int `mapstructure:"dbmaxidleconns"`

	// Job scheduling settings
	ReconcileIntervalSeconds int `mapstructure:"reconcileintervalseconds"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		v.SetDefault("appname", "linkhub")
		v.SetDefault("appport", "5000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("jwtsecret", "88888888888888888888888888888888")
		v.SetDefault("tokenttldays", 7)
		v.SetDefault("storagepath", "storage")
		v.SetDefault("geodbpath", "storage/GeoLite2-City.mmdb")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)
		v.SetDefault("dbmaxopenconns", 0)
		v.SetDefault("dbmaxidleconns", 0)
		v.SetDefault("reconcileintervalseconds", 3600)

		v.BindEnv("appname", "LINKHUB_APP_NAME")
		v.BindEnv("appport", "LINKHUB_APP_PORT")
		v.BindEnv("environment", "LINKHUB_ENV")
		v.BindEnv("loglevel", "LINKHUB_LOG_LEVEL")
		v.BindEnv("jwtsecret", "LINKHUB_JWT_SECRET")
		v.BindEnv("tokenttldays", "LINKHUB_TOKEN_TTL_DAYS")
		v.BindEnv("storagepath", "LINKHUB_STORAGE_PATH")
		v.BindEnv("geodbpath", "LINKHUB_GEO_DB_PATH")
		v.BindEnv("logsdir", "LINKHUB_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "LINKHUB_LOGS_MAX_SIZE_IN_MB")
		v.BindEnv("logsmaxbackups", "LINKHUB_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "LINKHUB_LOGS_MAX_AGE_IN_DAYS")
		v.BindEnv("dbmaxopenconns", "LINKHUB_DB_MAX_OPEN_CONNS")
		v.BindEnv("dbmaxidleconns", "LINKHUB_DB_MAX_IDLE_CONNS")
		v.BindEnv("reconcileintervalseconds", "LINKHUB_RECONCILE_INTERVAL_SECONDS")

		cfg = &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			log.Fatalf("config: failed to unmarshal configuration: %v", err)
		}

		if err := cfg.validate(); err != nil {
			log.Fatalf("config: invalid configuration: %v", err)
		}

		// Set derived values
		cfg.DatabaseName = cfg.GetDatabasePath()

		// The JWT secret signs every session token - in production it must be explicitly set
		defaultSecret := "88888888888888888888888888888888"
		if cfg.JWTSecret == "" {
			log.Fatal("JWT secret is required")
		}
		if cfg.IsProduction() && cfg.JWTSecret == defaultSecret {
			log.Fatal("Production requires a unique LINKHUB_JWT_SECRET (cannot use default)")
		}
	})
	return cfg
}

// validate checks the configuration for errors
func (c *Config) validate() error {
	validEnvs := map[string]bool{
		Development: true,
		Production:  true,
		Test:        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	if c.TokenTTLDays <= 0 {
		return fmt.Errorf("invalid token TTL: %d days", c.TokenTTLDays)
	}

	return nil
}

// GetDatabasePath returns the appropriate database path based on environment
func (c *Config) GetDatabasePath() string {
	if c.DatabaseName == "" {
		c.DatabaseName = filepath.Join(c.DatabasePath,
			fmt.Sprintf("%s-%s.db", c.AppName, c.Environment))
	}
	return c.DatabaseName
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest returns true if the environment is test
func (c *Config) IsTest() bool {
	return c.Environment == Test
}

// GetMaxOpenConns returns the appropriate MaxOpenConns value based on environment.
// If explicitly set via env var, uses that value. Otherwise:
// - Test: 1 (required for test stability on a shared in-memory database)
// - Development/Production: 10 (allows concurrent reads for parallel dashboard queries)
func (c *Config) GetMaxOpenConns() int {
	if c.DatabaseMaxOpenConns > 0 {
		return c.DatabaseMaxOpenConns
	}

	if c.Environment == Test {
		return 1
	}

	return 10
}

// GetMaxIdleConns returns the appropriate MaxIdleConns value based on environment.
func (c *Config) GetMaxIdleConns() int {
	if c.DatabaseMaxIdleConns > 0 {
		return c.DatabaseMaxIdleConns
	}

	if c.Environment == Test {
		return 1
	}

	return 5
}

// GetTokenTTL returns the lifetime of issued auth tokens.
func (c *Config) GetTokenTTL() time.Duration {
	return time.Duration(c.TokenTTLDays) * 24 * time.Hour
}

// Reset clears the cached configuration; intended for tests.
func Reset() {
	once = sync.Once{}
	cfg = nil
}
