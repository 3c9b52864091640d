package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadENV loads the environment variables from .env if GO_ENV is unset or
// development. A missing .env file is not an error.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV    string
	PORT      int
	LOG_LEVEL string
	// Database Configuration
	DB_DRIVER    string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	DB_PATH      string
	// HTTP Security
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	RATE_LIMIT_WINDOW   time.Duration
	// Redis Configuration
	REDIS_URL      string
	TASK_CACHE_TTL time.Duration
	// RabbitMQ Configuration
	AMQP_URL      string
	AMQP_EXCHANGE string
	// Cron Configuration
	CRON_ENABLED           bool
	OVERDUE_SWEEP_SCHEDULE string
}

// IsProduction reports whether GO_ENV is production
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

func Get() (*EnvironmentVariable, error) {
	envVariables := &EnvironmentVariable{
		GO_ENV:    getString("GO_ENV", "development"),
		PORT:      getInt("PORT", 8080),
		LOG_LEVEL: getString("LOG_LEVEL", "info"),
		// Database
		DB_DRIVER:    getString("DB_DRIVER", "postgres"),
		DB_USER_NAME: getString("DB_USER_NAME", "postgres"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      getString("DB_NAME", "taskmanager"),
		DB_HOST:      getString("DB_HOST", "localhost"),
		DB_PORT:      getString("DB_PORT", "5432"),
		DB_SSL_MODE:  getString("DB_SSL_MODE", "disable"),
		DB_PATH:      getString("DB_PATH", "tasks.db"),
		// Security
		ALLOWED_ORIGINS:     getString("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		RATE_LIMIT_REQUESTS: getInt("RATE_LIMIT_REQUESTS", 100),
		RATE_LIMIT_WINDOW:   time.Duration(getInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		// Redis
		REDIS_URL:      os.Getenv("REDIS_URL"),
		TASK_CACHE_TTL: time.Duration(getInt("TASK_CACHE_TTL_SECONDS", 300)) * time.Second,
		// RabbitMQ
		AMQP_URL:      os.Getenv("AMQP_URL"),
		AMQP_EXCHANGE: getString("AMQP_EXCHANGE", "task_events"),
		// Cron
		CRON_ENABLED:           os.Getenv("CRON_ENABLED") != "false", // Default to enabled
		OVERDUE_SWEEP_SCHEDULE: getString("OVERDUE_SWEEP_SCHEDULE", "0 */15 * * * *"),
	}

	return envVariables, nil
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
