package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	BackendURL  string // Marketplace backend base URL (default: http://localhost:4000)
	FrontendURL string // Frontend origin for OAuth redirects (default: http://localhost:3000)

	BackendTimeout       time.Duration // Per-call backend timeout (default: 10s)
	DatabaseFile         string        // Path to SQLite guest cart database (default: ./gateway.db)
	GuestCartTTL         time.Duration // Guest cart retention (default: 30 days)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		BackendURL:           getEnvOrDefault("BACKEND_URL", "http://localhost:4000"),
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
		BackendTimeout:       getEnvDurationOrDefault("BACKEND_TIMEOUT", 10*time.Second),
		DatabaseFile:         getEnvOrDefault("DATABASE_FILE", "gateway.db"),
		GuestCartTTL:         getEnvDurationOrDefault("GUEST_CART_TTL", 30*24*time.Hour),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

// SecureCookies reports whether cookies should carry the Secure attribute.
// Local development runs over plain HTTP, everything else is TLS-terminated.
func (c Config) SecureCookies() bool {
	return c.Env != "dev"
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
