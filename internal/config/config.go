package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string // Empty keeps the board in memory only
	TablePrefix string
	CORSOrigins string
	// Snapshot broadcast
	RedisURL     string
	RedisChannel string
	// Auth: bearer tokens are required on /api when set
	AuthJWKSURL string
	// Timing
	SSEKeepAlive   time.Duration
	PersistTimeout time.Duration
	// Logging
	LogDir      string
	LogMaxFiles int
	// Debug turns on debug-level logging
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Environment:    env,
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		TablePrefix:    getTablePrefix(env),
		CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		RedisURL:       getEnv("REDIS_URL", ""),
		RedisChannel:   getEnv("REDIS_CHANNEL", "board:projects"),
		AuthJWKSURL:    getEnv("AUTH_JWKS_URL", ""),
		SSEKeepAlive:   getDuration("SSE_KEEPALIVE", 10*time.Second),
		PersistTimeout: getDuration("PERSIST_TIMEOUT", 5*time.Second),
		LogDir:         getEnv("LOG_DIR", ""),
		LogMaxFiles:    getInt("LOG_MAX_FILES", 10),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration parses a Go duration ("15s"); malformed values fall back to the default
func getDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func getInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
