package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Port != "5000" {
		t.Fatalf("unexpected default port %q", cfg.App.Port)
	}
	if cfg.Upload.Dir != "uploads/images" {
		t.Fatalf("unexpected upload dir %q", cfg.Upload.Dir)
	}
	if cfg.Upload.MaxBytes != 5242880 {
		t.Fatalf("unexpected upload limit %d", cfg.Upload.MaxBytes)
	}
	if cfg.Auth.AccessTokenTTL() != time.Hour {
		t.Fatalf("unexpected token ttl %v", cfg.Auth.AccessTokenTTL())
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("AUTH_JWT_SECRET", "test-secret")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.App.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %q", cfg.App.Addr())
	}
	if cfg.Auth.JWTSecret != "test-secret" {
		t.Fatalf("unexpected secret %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.AccessTokenTTL() != 15*time.Minute {
		t.Fatalf("unexpected ttl %v", cfg.Auth.AccessTokenTTL())
	}
	if cfg.Upload.MaxBytes != 1024 {
		t.Fatalf("unexpected upload limit %d", cfg.Upload.MaxBytes)
	}
}

func TestLoadRejectsMalformedUploadLimit(t *testing.T) {
	t.Setenv("UPLOAD_MAX_BYTES", "lots")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a malformed limit")
	}
}
