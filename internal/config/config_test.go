package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":3000" {
		t.Fatalf("unexpected listen addr %q", cfg.ListenAddr)
	}
	if got := cfg.Flipped(); len(got) != 2 || got[0] || !got[1] {
		t.Fatalf("expected two boards with opposite orientation, got %v", got)
	}
	if cfg.Clock() != 5*time.Minute {
		t.Fatalf("unexpected default clock %v", cfg.Clock())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte("listen_addr: \":8080\"\nclock_ms: 180000\nboards:\n  - flipped: false\n  - flipped: true\n  - flipped: false\n  - flipped: true\n")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("unexpected listen addr %q", cfg.ListenAddr)
	}
	if cfg.Clock() != 3*time.Minute {
		t.Fatalf("unexpected clock %v", cfg.Clock())
	}
	if len(cfg.Flipped()) != 4 {
		t.Fatalf("expected four boards, got %v", cfg.Flipped())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("CLOCK_MS", "60000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Fatalf("env override lost, got %q", cfg.ListenAddr)
	}
	if cfg.Clock() != time.Minute {
		t.Fatalf("env override lost, got %v", cfg.Clock())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("boards: []\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("a config without boards must be rejected")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("a missing explicit config file must be reported")
	}
}
