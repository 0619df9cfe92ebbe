package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"TASKQUEST_PORT", "TASKQUEST_DB_PATH", "TASKQUEST_BASE_URL", "TASKQUEST_BADGE_CATALOG",
		"TASKQUEST_STREAK_WINDOW_DAYS", "TASKQUEST_REDEEM_RATE_LIMIT",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DBPath != "taskquest.db" {
		t.Errorf("DBPath = %q, want taskquest.db", cfg.DBPath)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.StreakWindow != 30*24*time.Hour {
		t.Errorf("StreakWindow = %v, want 720h", cfg.StreakWindow)
	}
	if cfg.RedeemRateLimit != 5 {
		t.Errorf("RedeemRateLimit = %d, want 5", cfg.RedeemRateLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TASKQUEST_PORT", "9000")
	t.Setenv("TASKQUEST_BASE_URL", "")
	t.Setenv("TASKQUEST_STREAK_WINDOW_DAYS", "60")
	t.Setenv("TASKQUEST_REDEEM_RATE_LIMIT", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9000" {
		t.Errorf("BaseURL = %q, want port-derived default", cfg.BaseURL)
	}
	if cfg.StreakWindow != 60*24*time.Hour {
		t.Errorf("StreakWindow = %v", cfg.StreakWindow)
	}
	if cfg.RedeemRateLimit != 0 {
		t.Errorf("RedeemRateLimit = %d, want 0", cfg.RedeemRateLimit)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	tests := map[string]string{
		"TASKQUEST_STREAK_WINDOW_DAYS": "soon",
		"TASKQUEST_REDEEM_RATE_LIMIT":  "lots",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv("TASKQUEST_STREAK_WINDOW_DAYS", "")
			t.Setenv("TASKQUEST_REDEEM_RATE_LIMIT", "")
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Errorf("Load with %s=%q succeeded, want error", key, val)
			}
		})
	}

	t.Setenv("TASKQUEST_REDEEM_RATE_LIMIT", "")
	t.Setenv("TASKQUEST_STREAK_WINDOW_DAYS", "0")
	if _, err := Load(); err == nil {
		t.Error("Load with zero streak window succeeded, want error")
	}
}

func TestCatalog(t *testing.T) {
	c, err := Config{}.Catalog()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	if _, ok := c.Get("first_task"); !ok {
		t.Error("default catalog missing first_task")
	}

	path := filepath.Join(t.TempDir(), "badges.yaml")
	doc := "badges:\n  - id: shiny\n    name: Shiny\n    type: purchasable\n    price: 5\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err = Config{CatalogPath: path}.Catalog()
	if err != nil {
		t.Fatalf("file catalog: %v", err)
	}
	if len(c.Definitions()) != 1 {
		t.Errorf("definitions = %d, want 1", len(c.Definitions()))
	}

	if _, err := (Config{CatalogPath: filepath.Join(t.TempDir(), "missing.yaml")}).Catalog(); err == nil {
		t.Error("missing catalog file succeeded, want error")
	}
}
