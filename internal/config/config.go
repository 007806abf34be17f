package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Store        StoreConfig        `mapstructure:"store"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Log          LogConfig          `mapstructure:"log"`
	Email        EmailConfig        `mapstructure:"email"`
	Reminder     ReminderConfig     `mapstructure:"reminder"`
	RateLimiting RateLimitingConfig `mapstructure:"rate_limiting"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StoreConfig selects the appointment store backend
type StoreConfig struct {
	// Driver is the store backend: "memory" or "postgres"
	Driver string `mapstructure:"driver"`
	// SeedFile is an optional JSON fixture loaded into the memory store at startup
	SeedFile string `mapstructure:"seed_file"`
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode"`
	MaxConnections int    `mapstructure:"max_connections"`
}

// DSN returns the PostgreSQL connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EmailConfig holds email sending configuration
type EmailConfig struct {
	// Provider is the email provider to use; only "resend" is implemented
	Provider string `mapstructure:"provider"`
	// Resend holds Resend API configuration
	Resend ResendConfig `mapstructure:"resend"`
}

// ResendConfig holds Resend API configuration
type ResendConfig struct {
	// APIKey is the Resend API key; delivery is reported as unavailable when empty
	APIKey string `mapstructure:"api_key"`
}

// ReminderConfig holds reminder window and batch dispatch configuration
type ReminderConfig struct {
	// DefaultHorizon is the lookahead window for upcoming reminders
	DefaultHorizon time.Duration `mapstructure:"default_horizon"`
	// BatchPause is the pause between successive sends in a batch dispatch
	BatchPause time.Duration `mapstructure:"batch_pause"`
}

// RateLimitingConfig holds rate limiting configuration
type RateLimitingConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	SendLimit    int    `mapstructure:"send_limit"`
	SendWindow   string `mapstructure:"send_window"`
	DefaultLimit int    `mapstructure:"default_limit"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mediflow")

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Bind environment variables
	v.SetEnvPrefix("MEDIFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Store.Driver != "memory" && cfg.Store.Driver != "postgres" {
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// Store defaults
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.seed_file", "")

	// Database defaults
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "mediflow")
	v.SetDefault("database.user", "mediflow")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 25)

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Email defaults
	v.SetDefault("email.provider", "resend")
	v.SetDefault("email.resend.api_key", "")

	// Reminder defaults
	v.SetDefault("reminder.default_horizon", "24h")
	v.SetDefault("reminder.batch_pause", "1s")

	// Rate limiting defaults
	v.SetDefault("rate_limiting.enabled", false)
	v.SetDefault("rate_limiting.send_limit", 30)
	v.SetDefault("rate_limiting.send_window", "1m")
	v.SetDefault("rate_limiting.default_limit", 100)
}
