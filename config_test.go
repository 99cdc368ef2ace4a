package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8000" {
		t.Errorf("default server = %q", cfg.ServerURL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("default timeout = %v", cfg.Timeout())
	}
}

func TestLoadConfigParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "server_url: https://plan.example.com\ntoken: abc123\ntimeout_seconds: 5\nstate_db: /tmp/planctl.db\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "https://plan.example.com" || cfg.Token != "abc123" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
	if cfg.StateDB != "/tmp/planctl.db" {
		t.Errorf("state_db = %q", cfg.StateDB)
	}
}

func TestLoadConfigRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server_url: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(path); err == nil {
		t.Error("malformed yaml must be an error, not a silent default")
	}
}
