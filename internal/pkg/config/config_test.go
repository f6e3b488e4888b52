package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("expected default port 8000, got %q", cfg.Port)
	}
	if cfg.Database.URL != "" || cfg.Database.SQLitePath != "data/atendimentos.db" {
		t.Errorf("expected SQLite default, got %+v", cfg.Database)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis should be disabled by default, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.IdempotencyTTL != 24*time.Hour {
		t.Errorf("unexpected idempotency ttl: %v", cfg.Redis.IdempotencyTTL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if cfg.IsProduction() {
		t.Errorf("default env should not be production")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                "production",
		"DATABASE_URL":       "postgres://u:p@db:5432/atend",
		"REDIS_ADDR":         "cache:6379",
		"CORS_ALLOW_ORIGINS": "https://a.example,https://b.example",
		"SHUTDOWN_TIMEOUT":   "3s",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !cfg.IsProduction() {
		t.Errorf("expected production")
	}
	if cfg.Database.URL != "postgres://u:p@db:5432/atend" {
		t.Errorf("unexpected database url %q", cfg.Database.URL)
	}
	if cfg.Redis.Addr != "cache:6379" {
		t.Errorf("unexpected redis addr %q", cfg.Redis.Addr)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("expected two origins, got %v", cfg.CORSOrigins)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Errorf("unexpected shutdown timeout %v", cfg.ShutdownTimeout)
	}
}

func TestConfig_Location(t *testing.T) {
	cfg := &Config{Timezone: "America/Sao_Paulo"}
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.String() != "America/Sao_Paulo" {
		t.Fatalf("unexpected location %s", loc)
	}

	cfg.Timezone = "Mars/Olympus"
	if _, err := cfg.Location(); err == nil {
		t.Fatalf("expected error for unknown zone")
	}
}
