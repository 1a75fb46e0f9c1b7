package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"bandroom/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	if cfg.Backend != "file" {
		t.Fatalf("expected default backend=file, got %q", cfg.Backend)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port=8080, got %d", cfg.Port)
	}
	want := []string{"Lead Guitar", "Bass", "Drums", "Keys", "Saxophone", "Vocals"}
	if !reflect.DeepEqual(cfg.Members, want) {
		t.Fatalf("unexpected default members: %v", cfg.Members)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bandroom.toml")
	content := `
port = 9000
backend = "sqlite"
members = ["Bass", "Drums"]

[rate_limit]
per_minute = 60
burst = 10
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	if err := cfg.Load(path); err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 9000 {
		t.Fatalf("expected port=9000, got %d", cfg.Port)
	}
	if cfg.Backend != "sqlite" {
		t.Fatalf("expected backend=sqlite, got %q", cfg.Backend)
	}
	if !reflect.DeepEqual(cfg.Members, []string{"Bass", "Drums"}) {
		t.Fatalf("unexpected members: %v", cfg.Members)
	}
	if cfg.RateLimit.PerMinute != 60 || cfg.RateLimit.Burst != 10 {
		t.Fatalf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	// Untouched fields keep their defaults.
	if cfg.DataDir != "./data" {
		t.Fatalf("expected default data dir, got %q", cfg.DataDir)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg := config.Default()
	cfg.ApplyEnv()
	if cfg.Port != 9090 {
		t.Fatalf("expected port=9090, got %d", cfg.Port)
	}
	if cfg.Backend != "memory" {
		t.Fatalf("expected backend=memory, got %q", cfg.Backend)
	}
	if !reflect.DeepEqual(cfg.AllowedOrigins, []string{"https://a.example", "https://b.example"}) {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestApplyEnvIgnoresBadPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	cfg := config.Default()
	cfg.ApplyEnv()
	if cfg.Port != 8080 {
		t.Fatalf("expected port unchanged, got %d", cfg.Port)
	}
}
