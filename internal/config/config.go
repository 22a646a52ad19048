// Package config loads the dashboard configuration: defaults, then an
// optional YAML file, then PROCTOR_* environment overrides.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Reconnect ReconnectConfig `yaml:"reconnect"`
	UI        UIConfig        `yaml:"ui"`
}

type ServerConfig struct {
	URL   string `yaml:"url" env:"PROCTOR_URL"`
	Token string `yaml:"token" env:"PROCTOR_TOKEN"`
}

type ReconnectConfig struct {
	BaseDelay time.Duration `yaml:"base_delay" env:"PROCTOR_RECONNECT_BASE_DELAY"`
	MaxDelay  time.Duration `yaml:"max_delay" env:"PROCTOR_RECONNECT_MAX_DELAY"`
}

type UIConfig struct {
	// AlertLogCap bounds the alert feed; 0 keeps it unbounded, matching the
	// monitor dashboard's visible behavior.
	AlertLogCap   int           `yaml:"alert_log_cap" env:"PROCTOR_ALERT_LOG_CAP"`
	ClockInterval time.Duration `yaml:"clock_interval" env:"PROCTOR_CLOCK_INTERVAL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "ws://127.0.0.1:8080/ws",
		},
		Reconnect: ReconnectConfig{
			BaseDelay: time.Second,
			MaxDelay:  30 * time.Second,
		},
		UI: UIConfig{
			AlertLogCap:   0,
			ClockInterval: time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
