// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is applied
// first when present, so local development needs no exported variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret signs session tokens. Required.
	JWTSecret string

	// NPSBaseURL is the upstream National Park Service API base URL. Required.
	NPSBaseURL string

	// NPSAPIKey authenticates proxied calls to the upstream API. Required.
	NPSAPIKey string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// AutoMigrate applies pending goose migrations at startup when true.
	// Defaults to false; set AUTO_MIGRATE=true to enable.
	AutoMigrate bool
}

// Load reads configuration from the environment (and an optional .env file)
// and returns a Config. Returns an error listing any required variables
// that are not set.
func Load() (Config, error) {
	// Missing .env is fine — production sets real environment variables.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AutoMigrate: getEnv("AUTO_MIGRATE", "false") == "true",
	}

	var missing []string

	for _, v := range []struct {
		key  string
		dest *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"JWT_SECRET", &cfg.JWTSecret},
		{"NPS_API_URL", &cfg.NPSBaseURL},
		{"NPS_API_KEY", &cfg.NPSAPIKey},
	} {
		*v.dest = os.Getenv(v.key)
		if *v.dest == "" {
			missing = append(missing, v.key)
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
