package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the planctl config file (~/.config/planctl/config.yaml by
// default). Flags override file values.
type Config struct {
	ServerURL      string `yaml:"server_url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	StateDB        string `yaml:"state_db"`
}

func defaultConfig() Config {
	return Config{
		ServerURL:      "http://localhost:8000",
		TimeoutSeconds: 30,
	}
}

// loadConfig reads path, falling back to defaults when the file does not
// exist. An unreadable or malformed file is an error, not a silent default.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	return cfg, nil
}

// defaultConfigPath is ~/.config/planctl/config.yaml, or the working
// directory when no home is resolvable.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "planctl.yaml"
	}
	return filepath.Join(home, ".config", "planctl", "config.yaml")
}

// defaultStateDBPath places the local state database next to the config.
func defaultStateDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "planctl.db"
	}
	return filepath.Join(home, ".config", "planctl", "state.db")
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
