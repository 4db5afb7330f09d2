package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected logLevel info, got %q", cfg.LogLevel)
	}
	if cfg.Anim.Frames != 31 || cfg.Anim.Pool != 4 {
		t.Errorf("expected 31 frames and 4 handles, got %d/%d", cfg.Anim.Frames, cfg.Anim.Pool)
	}
	if cfg.Anim.Duration != time.Second {
		t.Errorf("expected 1s duration, got %v", cfg.Anim.Duration)
	}
	if cfg.Surface.Backend != "memory" {
		t.Errorf("expected memory backend, got %q", cfg.Surface.Backend)
	}
	if kib, err := cfg.Cache.BudgetKiB(); err != nil || kib != 0 {
		t.Errorf("expected empty budget, got %d %v", kib, err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "markers.yaml")
	data := `
logLevel: debug
render:
  density: 3
cache:
  budget: 16MB
anim:
  enabled: false
  duration: 250ms
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" || cfg.Render.Density != 3 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Anim.Enabled || cfg.Anim.Duration != 250*time.Millisecond {
		t.Errorf("unexpected anim config %+v", cfg.Anim)
	}
	if kib, _ := cfg.Cache.BudgetKiB(); kib != 16*1024 {
		t.Errorf("expected 16384 KiB, got %d", kib)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Anim.Frames != 31 {
		t.Errorf("expected default frames, got %d", cfg.Anim.Frames)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MARKERS_LOGLEVEL", "warn")
	t.Setenv("MARKERS_ANIM_POOL", "6")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("expected env log level, got %q", cfg.LogLevel)
	}
	if cfg.Anim.Pool != 6 {
		t.Errorf("expected env pool size, got %d", cfg.Anim.Pool)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/markers.yaml"); err == nil || !strings.Contains(err.Error(), "error reading config file") {
		t.Errorf("expected read error, got %v", err)
	}

	t.Setenv("MARKERS_CACHE_BUDGET", "lots")
	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "invalid cache budget") {
		t.Errorf("expected budget error, got %v", err)
	}
}
