package app

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBase          string        // Base URL of the records API (default: http://127.0.0.1:5000/api)
	DatabaseFile     string        // Optional: path to SQLite session database (default: ./zanconfig.db)
	SecretFile       string        // Optional: path to the console secret, generated if missing (default: ./secret.key)
	SigningKeyFile   string        // Optional: path to the session cookie Ed25519 key, generated if missing (default: ./session.pem)
	SessionTTL       time.Duration // Session lifetime (default: 12h)
	DashboardRefresh time.Duration // Dashboard reload interval, 0 disables (default: 30s)
	SecureCookies    bool          // Mark cookies Secure and expect HTTPS (default: false in dev, true otherwise)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired session sweep interval (default: 1h)
}

// LoadConfig reads the configuration from the environment. Values in a
// .env file in the working directory (or ZANCONFIG_ENV_FILE) are loaded
// first and never override variables that are already set.
func LoadConfig() (Config, error) {
	envFile := getEnvOrDefault("ZANCONFIG_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	env := getEnvOrDefault("ENV", "dev")

	cfg := Config{
		APIBase:          getEnvOrDefault("ZANCONFIG_API_BASE", "http://127.0.0.1:5000/api"),
		DatabaseFile:     getEnvOrDefault("ZANCONFIG_DATABASE_FILE", "zanconfig.db"),
		SecretFile:       getEnvOrDefault("ZANCONFIG_SECRET_FILE", "secret.key"),
		SigningKeyFile:   getEnvOrDefault("ZANCONFIG_SIGNING_KEY_FILE", "session.pem"),
		SessionTTL:       getEnvDurationOrDefault("ZANCONFIG_SESSION_TTL", 12*time.Hour),
		DashboardRefresh: getEnvDurationOrDefault("ZANCONFIG_DASHBOARD_REFRESH", 30*time.Second),
		SecureCookies:    getEnvBoolOrDefault("ZANCONFIG_SECURE_COOKIES", env != "dev"),

		Env:                  env,
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	return cfg, nil
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
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
