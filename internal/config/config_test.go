package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "TEMPLATE_GLOB", "CORS_ORIGINS", "THEME_COOKIE", "CONTENT_FILE"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8080" || cfg.TemplateGlob != "templates/*" || cfg.ThemeCookie != "theme" || cfg.ContentFile != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("expected wildcard CORS origin, got %v", cfg.CORSOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadFile(t *testing.T) {
	// Setenv restores the original value; the variable must be absent for
	// godotenv to set it.
	t.Setenv("THEME_COOKIE", "")
	os.Unsetenv("THEME_COOKIE")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("THEME_COOKIE=site_theme\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ThemeCookie != "site_theme" {
		t.Fatalf("expected cookie name from .env, got %q", cfg.ThemeCookie)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestValidatePort(t *testing.T) {
	for _, port := range []string{"", "http", "0", "70000", "-1"} {
		cfg := &Config{Port: port, ThemeCookie: "theme"}
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidPort) {
			t.Errorf("port %q: expected ErrInvalidPort, got %v", port, err)
		}
	}
}
