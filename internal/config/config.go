// Package config reads taskquest settings from TASKQUEST_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dukerupert/taskquest/internal/badge"
)

type Config struct {
	Port            string
	DBPath          string
	LogLevel        string
	BaseURL         string
	PostmarkToken   string
	FromEmail       string
	CatalogPath     string
	StreakWindow    time.Duration
	RedeemRateLimit int
}

// Load reads the environment, applying defaults for unset variables.
func Load() (Config, error) {
	cfg := Config{
		Port:          getenv("TASKQUEST_PORT", "8080"),
		DBPath:        getenv("TASKQUEST_DB_PATH", "taskquest.db"),
		LogLevel:      os.Getenv("TASKQUEST_LOG_LEVEL"),
		PostmarkToken: os.Getenv("TASKQUEST_POSTMARK_TOKEN"),
		FromEmail:     os.Getenv("TASKQUEST_FROM_EMAIL"),
		CatalogPath:   os.Getenv("TASKQUEST_BADGE_CATALOG"),
	}
	cfg.BaseURL = getenv("TASKQUEST_BASE_URL", "http://localhost:"+cfg.Port)

	days, err := intEnv("TASKQUEST_STREAK_WINDOW_DAYS", 30)
	if err != nil {
		return Config{}, err
	}
	if days < 1 {
		return Config{}, fmt.Errorf("TASKQUEST_STREAK_WINDOW_DAYS must be positive, got %d", days)
	}
	cfg.StreakWindow = time.Duration(days) * 24 * time.Hour

	cfg.RedeemRateLimit, err = intEnv("TASKQUEST_REDEEM_RATE_LIMIT", 5)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Catalog returns the badge catalog at CatalogPath, or the compiled-in
// default when no path is set.
func (c Config) Catalog() (*badge.Catalog, error) {
	if c.CatalogPath == "" {
		return badge.DefaultCatalog(), nil
	}
	return badge.LoadCatalog(c.CatalogPath)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
