package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cmi")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.CodeMaxRetries != 5 {
		t.Fatalf("expected 5 code retries, got %d", cfg.CodeMaxRetries)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("expected default locale en, got %s", cfg.DefaultLocale)
	}
	if cfg.SubmitRateWindow() != 10*time.Minute {
		t.Fatalf("unexpected submit window %v", cfg.SubmitRateWindow())
	}
	if cfg.ShareTokenTTL() != 24*time.Hour {
		t.Fatalf("unexpected share token ttl %v", cfg.ShareTokenTTL())
	}
	if cfg.ResultCacheTTL() != time.Hour {
		t.Fatalf("unexpected cache ttl %v", cfg.ResultCacheTTL())
	}
}

func TestLoadConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when DATABASE_URL is missing")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cmi")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_USE_TLS", "true")
	t.Setenv("CODE_MAX_RETRIES", "3")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.SMTPPort != 465 || !cfg.SMTPUseTLS || cfg.CodeMaxRetries != 3 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}
