package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port        string
	Environment string

	// APIBaseURL is the upstream marketplace API all storefront calls go
	// through.
	APIBaseURL     string
	RequestTimeout time.Duration

	// RedisURL enables the Redis session store; empty falls back to the
	// in-memory store.
	RedisURL   string
	SessionTTL time.Duration

	// SessionSealKey, when set, encrypts bearer tokens before they are
	// written to Redis.
	SessionSealKey string

	AllowedOrigins []string

	RateLimitRPS   float64
	RateLimitBurst int

	CleanupInterval time.Duration
}

// New creates a new configuration from environment variables
func New() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://marketplace-gateway.global.svc.cluster.local:8080"),
		RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
		RedisURL:        os.Getenv("REDIS_URL"),
		SessionTTL:      getDurationEnv("SESSION_TTL", 24*time.Hour),
		SessionSealKey:  os.Getenv("SESSION_SEAL_KEY"),
		AllowedOrigins:  getSliceEnv("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitRPS:    getFloatEnv("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  getIntEnv("RATE_LIMIT_BURST", 40),
		CleanupInterval: getDurationEnv("SESSION_CLEANUP_INTERVAL", 1*time.Hour),
	}
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
