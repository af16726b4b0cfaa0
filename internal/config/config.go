// Package config loads sail-stats configuration from environment variables.
//
// An optional .env file in the working directory is read first; variables already
// set in the environment take precedence over it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL   = "http://sailing.mit.edu"
	DefaultCategory  = "13"
	DefaultUserAgent = "sail-stats/1.0 (github.com/mitsailing/sail-stats)"
	DefaultTimeout   = 30 * time.Second
	DefaultLogLevel  = "info"
	DefaultDataDir   = "."
)

// Config holds the settings that are not part of the date range.
type Config struct {
	// BaseURL is the scheme and host of the sailing club site.
	BaseURL string

	// Category is the calendar "type" code selecting sailing trips.
	Category string

	// UserAgent is sent with every request.
	UserAgent string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// DataDir is where the report file is written. "~/" is expanded.
	DataDir string
}

// Load reads configuration from the environment.
// Returns an error naming every variable that could not be parsed.
func Load() (Config, error) {
	// Missing .env is the normal case
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:   strings.TrimRight(getEnv("SAIL_STATS_BASE_URL", DefaultBaseURL), "/"),
		Category:  getEnv("SAIL_STATS_CATEGORY", DefaultCategory),
		UserAgent: getEnv("SAIL_STATS_USER_AGENT", DefaultUserAgent),
		Timeout:   DefaultTimeout,
		LogLevel:  strings.ToLower(getEnv("SAIL_STATS_LOG_LEVEL", DefaultLogLevel)),
		DataDir:   getEnv("SAIL_STATS_DATA_DIR", DefaultDataDir),
	}

	var invalid []string

	if v := os.Getenv("SAIL_STATS_HTTP_TIMEOUT"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			invalid = append(invalid, "SAIL_STATS_HTTP_TIMEOUT")
		} else {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
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
