// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Ledger backends accepted in LEDGER_BACKEND.
const (
	LedgerFile     = "file"
	LedgerPostgres = "postgres"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// LedgerBackend selects where bookings are stored: "file" (default) or "postgres".
	LedgerBackend string

	// LedgerPath is the booking ledger file used by the file backend.
	LedgerPath string

	// DatabaseURL is the Postgres connection string. Required when
	// LedgerBackend is "postgres", ignored otherwise.
	DatabaseURL string

	// SeedFile optionally replaces the embedded reference network with a YAML file.
	SeedFile string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing every variable that is missing or invalid.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LedgerBackend: getEnv("LEDGER_BACKEND", LedgerFile),
		LedgerPath:    getEnv("LEDGER_PATH", "pakistan_railway_bookings.txt"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SeedFile:      os.Getenv("SEED_FILE"),
		MaxBodyBytes:  1 << 20,
	}

	var problems []string

	switch cfg.LedgerBackend {
	case LedgerFile:
	case LedgerPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL (required when LEDGER_BACKEND=postgres)")
		}
	default:
		problems = append(problems, fmt.Sprintf("LEDGER_BACKEND (must be %q or %q, got %q)", LedgerFile, LedgerPostgres, cfg.LedgerBackend))
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			problems = append(problems, fmt.Sprintf("MAX_BODY_BYTES (must be a positive integer, got %q)", v))
		} else {
			cfg.MaxBodyBytes = n
		}
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
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
