// Package config loads process configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	VKToken       string
	DownloadDir   string
	FetchTimeout  time.Duration
	SearchTimeout time.Duration
	// MaxConcurrentDownloads bounds simultaneous fetches across all users.
	MaxConcurrentDownloads int
}

// Load reads the environment and returns the config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:          getEnv("TELEGRAM_TOKEN", ""),
		VKToken:                getEnv("VK_TOKEN", ""),
		DownloadDir:            getEnv("DOWNLOAD_DIR", "downloads"),
		MaxConcurrentDownloads: getEnvInt("MAX_CONCURRENT_DOWNLOADS", 2),
	}

	var err error
	if cfg.FetchTimeout, err = getEnvDuration("FETCH_TIMEOUT", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SearchTimeout, err = getEnvDuration("SEARCH_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN not set")
	}
	if cfg.VKToken == "" {
		return nil, fmt.Errorf("VK_TOKEN not set")
	}
	return cfg, nil
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a duration: %w", key, v, err)
	}
	return d, nil
}
