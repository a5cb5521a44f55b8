package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv     string
	LogLevel   string
	OperatorID string

	// HTTP
	HTTPAddr string

	// Database
	DatabaseURL      string
	DatabaseMaxConns int

	// Redis
	RedisURL string

	// RabbitMQ
	RabbitMQURL string

	// Outbox
	OutboxPollInterval     time.Duration
	OutboxBatchSize        int
	OutboxMaxRetries       int
	OutboxProcessorEnabled bool
}

// Load loads configuration from environment variables. An empty
// DATABASE_URL selects the local SQLite file so the CLI works without any
// setup.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		OperatorID: getEnv("SITELINE_OPERATOR_ID", "00000000-0000-0000-0000-000000000001"),

		HTTPAddr: getEnv("HTTP_ADDR", "0.0.0.0:8080"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseMaxConns: getIntEnv("DATABASE_MAX_CONNS", 10),

		RedisURL:    getEnv("REDIS_URL", ""),
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		OutboxPollInterval:     getDurationEnv("OUTBOX_POLL_INTERVAL", 200*time.Millisecond),
		OutboxBatchSize:        getIntEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:       getIntEnv("OUTBOX_MAX_RETRIES", 5),
		OutboxProcessorEnabled: getBoolEnv("OUTBOX_PROCESSOR_ENABLED", true),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = database.DefaultSQLitePath()
	}
	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
