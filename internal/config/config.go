// Package config loads runtime settings from a .env file and the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL       = "https://api.github.com/"
	DefaultCacheTTL     = 5 * time.Minute
	DefaultCacheSize    = 256
	DefaultShareBaseURL = "http://localhost:3000"
	DefaultLogLevel     = "warn"
)

type Config struct {
	GitHub  GitHubConfig
	History HistoryConfig
	// ShareBaseURL is the origin used when building shareable profile links.
	ShareBaseURL string
	LogLevel     string
}

type GitHubConfig struct {
	// Token is optional. The public API is used unauthenticated when empty.
	Token     string
	APIURL    string
	CacheTTL  time.Duration
	CacheSize int
}

type HistoryConfig struct {
	Path string
}

// Load reads an optional .env file, then builds the configuration from
// environment variables, applying defaults for anything unset.
// It reports whether a .env file was found.
func Load() (*Config, bool) {
	envLoaded := godotenv.Load() == nil

	cfg := &Config{
		GitHub: GitHubConfig{
			Token:     getEnv("GITHUB_TOKEN", ""),
			APIURL:    getEnv("GITHUB_API_URL", DefaultAPIURL),
			CacheTTL:  getEnvAsDuration("GITHUB_CACHE_TTL", DefaultCacheTTL),
			CacheSize: getEnvAsInt("GITHUB_CACHE_SIZE", DefaultCacheSize),
		},
		History: HistoryConfig{
			Path: getEnv("GITHUB_HUNTER_HISTORY", defaultHistoryPath()),
		},
		ShareBaseURL: getEnv("SHARE_BASE_URL", DefaultShareBaseURL),
		LogLevel:     getEnv("LOG_LEVEL", DefaultLogLevel),
	}
	return cfg, envLoaded
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".", "githunter-history.json")
	}
	return filepath.Join(dir, "githunter", "history.json")
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as a positive integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration parses values like "90s" or "5m".
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
