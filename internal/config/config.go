// Package config holds bughound configuration loaded from YAML with
// environment overrides for secrets and deploy-time settings.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all bughound configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Insight InsightConfig `yaml:"insight"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP shell.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	AllowedOrigin string `yaml:"allowed_origin"`
	// RequestTimeout bounds one /analyze call end to end.
	RequestTimeout string `yaml:"request_timeout"`
}

// InsightConfig configures the external model collaborator.
type InsightConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	// Timeout bounds the remote model call; the heuristic path ignores it.
	Timeout string `yaml:"timeout"`
}

// HistoryConfig configures the analysis-summary store.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":5000",
			AllowedOrigin:  "*",
			RequestTimeout: "30s",
		},
		Insight: InsightConfig{
			Enabled: true,
			Model:   "gemini-2.0-flash",
			Timeout: "10s",
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "bughound.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, layering it over the defaults and
// applying environment overrides. A missing file is not an error; the
// defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv applies environment overrides. Secrets come from the
// environment so config files can be committed without them.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.Insight.APIKey = v
	}
	if v := os.Getenv("BUGHOUND_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("BUGHOUND_DB"); v != "" {
		c.History.DatabasePath = v
	}
}

// ParseRequestTimeout returns the server request timeout, defaulting to
// 30s on empty or malformed values.
func (c *ServerConfig) ParseRequestTimeout() time.Duration {
	return parseDuration(c.RequestTimeout, 30*time.Second)
}

// ParseTimeout returns the insight call timeout, defaulting to 10s.
func (c *InsightConfig) ParseTimeout() time.Duration {
	return parseDuration(c.Timeout, 10*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
