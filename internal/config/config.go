package config

import (
	"os"
	"strconv"
)

// Config holds the full application configuration, loaded from environment
// variables. A .env file is picked up by the CLI entry point.
type Config struct {
	Database   DatabaseConfig
	PhotoPrism PhotoPrismConfig
	Detection  DetectionConfig
	Web        WebConfig
}

// DatabaseConfig configures the local PostgreSQL store.
type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

// PhotoPrismConfig configures the optional read-only PhotoPrism photo source.
type PhotoPrismConfig struct {
	DatabaseURL string // MariaDB DSN, e.g. photoprism:photoprism@tcp(mariadb:3306)/photoprism
}

// DetectionConfig carries the default clustering parameters. Flags and
// request bodies override these per run.
type DetectionConfig struct {
	EpsilonMinutes float64 // 0 means estimate from the gap distribution
	MinPoints      int     // default 3
}

// WebConfig configures the web server.
type WebConfig struct {
	Host string
	Port int
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a non-negative
// float. Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return f
	}
	return defaultVal
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		PhotoPrism: PhotoPrismConfig{
			DatabaseURL: os.Getenv("PHOTOPRISM_DATABASE_URL"),
		},
		Detection: DetectionConfig{
			EpsilonMinutes: envFloat("EPSILON_MINUTES", 0),
			MinPoints:      envInt("MIN_POINTS", 3),
		},
		Web: WebConfig{
			Host: envOr("WEB_HOST", "0.0.0.0"),
			Port: envInt("WEB_PORT", 8080),
		},
	}
}

func envOr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
