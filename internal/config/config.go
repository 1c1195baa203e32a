// Package config loads application configuration: built-in defaults,
// overlaid by an optional YAML file, overridden by ECOTRACK_* environment
// variables. The emission factor table is a separate resource loaded by
// the factors package; config only carries its path.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ecotrack/ecotrack/internal/logging"
)

// ServerConfig configures the HTTP layer.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string `yaml:"addr"`
}

// FactorsConfig points at the emission factor table resource.
type FactorsConfig struct {
	// Path is a YAML factor table file; empty means the embedded
	// default set.
	Path string `yaml:"path"`
}

// HistoryConfig bounds the in-memory entry store.
type HistoryConfig struct {
	TTLMinutes     int `yaml:"ttl_minutes"`
	CleanupMinutes int `yaml:"cleanup_minutes"`
}

// EngineConfig tunes calculation evaluation.
type EngineConfig struct {
	// Parallel evaluates category calculators concurrently. Output is
	// identical either way; this only trades goroutines for latency.
	Parallel bool `yaml:"parallel"`
}

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	Factors FactorsConfig  `yaml:"factors"`
	History HistoryConfig  `yaml:"history"`
	Engine  EngineConfig   `yaml:"engine"`
	Logging logging.Config `yaml:"logging"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8000"},
		Factors: FactorsConfig{Path: ""},
		History: HistoryConfig{TTLMinutes: 24 * 60, CleanupMinutes: 60},
		Engine:  EngineConfig{Parallel: false},
		Logging: logging.Config{Level: "info", Format: "json", Output: "stderr"},
	}
}

// Load builds a Config from defaults, an optional YAML file, and the
// environment. An empty path skips the file layer; a named file that is
// missing or malformed is an error rather than a silent fallback.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides individual settings from ECOTRACK_* variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("ECOTRACK_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("ECOTRACK_FACTORS_PATH"); v != "" {
		c.Factors.Path = v
	}
	if v := os.Getenv("ECOTRACK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("ECOTRACK_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("ECOTRACK_HISTORY_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.History.TTLMinutes = n
		}
	}
	if v := os.Getenv("ECOTRACK_ENGINE_PARALLEL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Engine.Parallel = b
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("config: server.addr must not be empty")
	}
	if c.History.TTLMinutes <= 0 {
		return fmt.Errorf("config: history.ttl_minutes must be > 0, got %d", c.History.TTLMinutes)
	}
	if c.History.CleanupMinutes <= 0 {
		return fmt.Errorf("config: history.cleanup_minutes must be > 0, got %d", c.History.CleanupMinutes)
	}
	return nil
}
