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

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("expected default store driver memory, got %q", cfg.Store.Driver)
	}
	if cfg.Reminder.DefaultHorizon != 24*time.Hour {
		t.Errorf("expected default horizon 24h, got %v", cfg.Reminder.DefaultHorizon)
	}
	if cfg.Reminder.BatchPause != time.Second {
		t.Errorf("expected default batch pause 1s, got %v", cfg.Reminder.BatchPause)
	}
	if cfg.Email.Provider != "resend" {
		t.Errorf("expected default provider resend, got %q", cfg.Email.Provider)
	}
	if cfg.RateLimiting.Enabled {
		t.Error("rate limiting should default to disabled")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MEDIFLOW_SERVER_PORT", "9090")
	t.Setenv("MEDIFLOW_REMINDER_BATCH_PAUSE", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090 from env, got %d", cfg.Server.Port)
	}
	if cfg.Reminder.BatchPause != 250*time.Millisecond {
		t.Errorf("expected batch pause 250ms from env, got %v", cfg.Reminder.BatchPause)
	}
}

func TestLoadRejectsUnknownStoreDriver(t *testing.T) {
	t.Setenv("MEDIFLOW_STORE_DRIVER", "sqlite")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown store driver")
	}
}

func TestDatabaseDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db.internal", Port: 5433,
		Name: "mediflow", User: "app", Password: "secret",
		SSLMode: "require",
	}
	want := "host=db.internal port=5433 user=app password=secret dbname=mediflow sslmode=require"
	if got := c.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}

func TestRedisAddr(t *testing.T) {
	c := RedisConfig{Host: "cache.internal", Port: 6380}
	if got := c.Addr(); got != "cache.internal:6380" {
		t.Fatalf("Addr() = %q", got)
	}
}
