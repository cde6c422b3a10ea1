package app_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pubident/internal/app"
)

func TestLoadConfig_MissingFile_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PUBIDENT_HOME", home)
	t.Setenv("PUBIDENT_LOG_LEVEL", "")
	t.Setenv("PUBIDENT_MAX_IDENT_AGE", "")

	cfg, err := app.LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Home != home {
		t.Fatalf("home: %q", cfg.Home)
	}
	def := app.DefaultConfig()
	if cfg.AuthorizationValidity != def.AuthorizationValidity || cfg.VerifyRateLimit != def.VerifyRateLimit {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.MaxIdentAge != 0 {
		t.Fatalf("max age should default to off, got %s", cfg.MaxIdentAge)
	}
}

func TestLoadConfig_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubident.yaml")
	yaml := "home: " + dir + "\n" +
		"logLevel: debug\n" +
		"maxIdentAge: 72h\n" +
		"authorizationValidity: 720h\n" +
		"verifyRateLimit:\n  perSecond: 5\n  burst: 10\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("PUBIDENT_HOME", "")
	t.Setenv("PUBIDENT_LOG_LEVEL", "warn")
	t.Setenv("PUBIDENT_MAX_IDENT_AGE", "")

	cfg, err := app.LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Home != dir || cfg.MaxIdentAge != 72*time.Hour || cfg.AuthorizationValidity != 720*time.Hour {
		t.Fatalf("yaml not applied: %+v", cfg)
	}
	if cfg.VerifyRateLimit.PerSecond != 5 || cfg.VerifyRateLimit.Burst != 10 {
		t.Fatalf("rate limit: %+v", cfg.VerifyRateLimit)
	}
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Fatalf("env should override log level, got %v", cfg.SlogLevel())
	}

	t.Setenv("PUBIDENT_MAX_IDENT_AGE", "1h")
	cfg, err = app.LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.MaxIdentAge != time.Hour {
		t.Fatalf("env max age: %s", cfg.MaxIdentAge)
	}

	t.Setenv("PUBIDENT_MAX_IDENT_AGE", "soon")
	if _, err := app.LoadConfig(path); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("logLevel: [unterminated"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := app.LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewWire_BuildsServices(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.Home = t.TempDir()
	w, err := app.NewWire(cfg, nil)
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	a := app.FromWire(w)
	if a.IDs == nil || a.Verify == nil || a.Blobs == nil || w.Registry == nil {
		t.Fatalf("incomplete wiring: %+v", a)
	}
	fps, err := a.IDs.Fingerprints("Correct-Horse-9")
	if err != nil || fps.Root != "" {
		t.Fatalf("fresh home fingerprints: %+v %v", fps, err)
	}
}
