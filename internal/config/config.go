package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

// Storage backends supported by the application.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Port           string
	DatabaseURL    string
	StorageBackend string
	MigrationsPath string
	LogLevel       string
	LogFormat      string
	TelegramToken  string
	TelegramChatID int64
}

// Load loads configuration from environment variables. Validation problems
// are collected so a broken deployment reports everything at once.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		StorageBackend: getEnvOrDefault("STORAGE_BACKEND", StoragePostgres),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", "migrations"),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
	}

	var errs *multierror.Error

	switch cfg.StorageBackend {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			errs = multierror.Append(errs, fmt.Errorf("DATABASE_URL environment variable is required"))
		}
	case StorageMemory:
		// nothing required
	default:
		errs = multierror.Append(errs, fmt.Errorf("STORAGE_BACKEND must be %q or %q", StoragePostgres, StorageMemory))
	}

	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer"))
		}
		cfg.TelegramChatID = chatID
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		errs = multierror.Append(errs, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set"))
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// NotificationsEnabled reports whether a Telegram notifier should be wired.
func (c *Config) NotificationsEnabled() bool {
	return c.TelegramToken != ""
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
