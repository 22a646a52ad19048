package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "ws://127.0.0.1:8080/ws" {
		t.Errorf("url = %q", cfg.Server.URL)
	}
	if cfg.Reconnect.BaseDelay != time.Second || cfg.Reconnect.MaxDelay != 30*time.Second {
		t.Errorf("reconnect = %+v", cfg.Reconnect)
	}
	if cfg.UI.AlertLogCap != 0 {
		t.Errorf("alert log cap = %d, want 0 (unbounded)", cfg.UI.AlertLogCap)
	}
	if cfg.UI.ClockInterval != time.Second {
		t.Errorf("clock interval = %v", cfg.UI.ClockInterval)
	}
}

func TestYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  url: ws://monitor.example:9000/ws
  token: sekrit
ui:
  alert_log_cap: 250
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "ws://monitor.example:9000/ws" {
		t.Errorf("url = %q", cfg.Server.URL)
	}
	if cfg.Server.Token != "sekrit" {
		t.Errorf("token = %q", cfg.Server.Token)
	}
	if cfg.UI.AlertLogCap != 250 {
		t.Errorf("alert log cap = %d", cfg.UI.AlertLogCap)
	}
	// Untouched sections keep their defaults.
	if cfg.Reconnect.BaseDelay != time.Second {
		t.Errorf("base delay = %v", cfg.Reconnect.BaseDelay)
	}
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  url: ws://from-yaml/ws\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PROCTOR_URL", "ws://from-env/ws")
	t.Setenv("PROCTOR_RECONNECT_MAX_DELAY", "2m")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "ws://from-env/ws" {
		t.Errorf("url = %q, env should win", cfg.Server.URL)
	}
	if cfg.Reconnect.MaxDelay != 2*time.Minute {
		t.Errorf("max delay = %v", cfg.Reconnect.MaxDelay)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}
