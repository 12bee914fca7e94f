// Package config loads the runtime's configuration from environment
// variables (optionally backed by a .env file), with defaults for
// everything.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/maurice2k/shardqueue/internal/applog"
)

// Config holds the runtime's configuration.
type Config struct {
	Host string
	Port string

	Environment     string
	ShutdownTimeout int // seconds
	ReadTimeout     int // seconds
	WriteTimeout    int // seconds
	IdleTimeout     int // seconds

	// Pool controls how the worker pool backing task submission is sized
	// and which implementation backs it.
	Workers         int
	PoolIdleTimeout int // milliseconds
	PoolBackend     string // "native" (default), "ants", "gammazero", "tunny", "pond"
}

// Load reads a .env file if present, then builds a Config from the
// process environment, falling back to defaults for anything unset.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		applog.Get().Info("no .env file found, using system environment variables")
	}

	return &Config{
		Host:            getEnv("HOST", "0.0.0.0"),
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("GIN_MODE", "release"),
		ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 60),
		WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 60),
		IdleTimeout:     getEnvAsInt("IDLE_TIMEOUT", 120),
		Workers:         getEnvAsInt("WORKERS", 0),
		PoolIdleTimeout: getEnvAsInt("POOL_IDLE_TIMEOUT_MS", 1000),
		PoolBackend:     getEnv("POOL_BACKEND", "native"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr := os.Getenv(key); valueStr != "" {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
		applog.Get().Warnf("invalid integer value for %s: %s, using default %d", key, valueStr, defaultValue)
	}
	return defaultValue
}

// IsDevelopment reports whether the runtime is configured for local
// development (affects gin's mode).
func (c *Config) IsDevelopment() bool {
	return c.Environment == "debug" || c.Environment == "development"
}

// ServerAddress returns the address http.Server should listen on.
func (c *Config) ServerAddress() string {
	return c.Host + ":" + c.Port
}
