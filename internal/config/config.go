package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	Env  string

	// StoreBackend selects the TransactionStore implementation:
	// "memory", "postgres" or "bolt".
	StoreBackend string
	DatabaseURL  string
	BoltPath     string

	RedisAddr     string
	RedisPassword string

	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Load reads an optional .env file and assembles the config from the
// environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, relying on environment variables")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		StoreBackend:    getEnv("STORE_BACKEND", "memory"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		BoltPath:        getEnv("BOLT_PATH", "payments.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using fallback", "key", key, "value", value)
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using fallback", "key", key, "value", value)
		return fallback
	}
	return d
}
