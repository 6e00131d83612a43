package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LookbackHours != 24 {
		t.Errorf("LookbackHours = %d, want 24", cfg.LookbackHours)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want 30s", cfg.RequestTimeout)
	}
	if cfg.MaxItemsPerFeed != 30 {
		t.Errorf("MaxItemsPerFeed = %d, want 30", cfg.MaxItemsPerFeed)
	}
	if cfg.FileStorePath == "" {
		t.Error("FileStorePath default missing")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/vninfra")
	t.Setenv("LOOKBACK_HOURS", "48")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "10")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "postgres://localhost/vninfra" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.LookbackHours != 48 {
		t.Errorf("LookbackHours = %d, want 48", cfg.LookbackHours)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if !cfg.Debug {
		t.Error("Debug not set")
	}
}

func TestValidateRejectsBadLookback(t *testing.T) {
	t.Setenv("LOOKBACK_HOURS", "-1")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative lookback")
	}
}
