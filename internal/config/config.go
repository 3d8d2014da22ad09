package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// MessageBird REST API
	MessageBirdAPIKey  string
	MessageBirdBaseURL string
	Originator         string

	// All customers are assumed to share one timezone; see the
	// schedule package for the conversion rules.
	Timezone       string
	DatetimeFormat string
	CountryCode    string

	// Optional Postgres-backed appointment store. Empty keeps the
	// in-memory store.
	DatabaseURL string

	// Optional Redis lookup cache. Empty disables caching.
	RedisAddr      string
	RedisPassword  string
	RedisTLS       bool
	LookupCacheTTL time.Duration
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MessageBirdAPIKey:  getEnv("MESSAGEBIRD_API_KEY", ""),
		MessageBirdBaseURL: getEnv("MESSAGEBIRD_BASE_URL", ""),
		Originator:         getEnv("MESSAGEBIRD_ORIGINATOR", "BeautyBird"),

		Timezone:       getEnv("TIMEZONE", "Europe/London"),
		DatetimeFormat: getEnv("DATETIME_FORMAT", "Mon, 02 Jan 2006 15:04"),
		CountryCode:    strings.TrimPrefix(getEnv("COUNTRY_CODE", "44"), "+"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisTLS:       getEnvAsBool("REDIS_TLS", false),
		LookupCacheTTL: getEnvAsDuration("LOOKUP_CACHE_TTL", 24*time.Hour),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
