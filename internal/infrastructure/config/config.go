// Package config loads service configuration.
// Precedence: defaults, then the YAML file when present, then LEANAID_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is tried when no config file is given explicitly.
const DefaultPath = "leanaid.yaml"

// Config is the root service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Ollama  OllamaConfig  `yaml:"ollama"`
	Store   StoreConfig   `yaml:"store"`
	Watch   WatchConfig   `yaml:"watch"`
	Suggest SuggestConfig `yaml:"suggest"`
	Debug   bool          `yaml:"debug"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OllamaConfig configures the optional external inference backend.
type OllamaConfig struct {
	Enabled        bool   `yaml:"enabled"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout bounds both inference round-trips (probe and generate).
func (c OllamaConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// StoreConfig configures proof persistence.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig configures the workspace watcher.
type WatchConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// SuggestConfig configures the suggestion engine.
type SuggestConfig struct {
	Limit int `yaml:"limit"`
}

// Default returns the configuration used when nothing else is specified.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8090"},
		Ollama: OllamaConfig{
			Enabled:        true,
			BaseURL:        "http://localhost:11434",
			Model:          "llama3.2",
			TimeoutSeconds: 15,
		},
		Store:   StoreConfig{Path: "./data"},
		Watch:   WatchConfig{Enabled: false, Dir: "./proofs"},
		Suggest: SuggestConfig{Limit: 6},
	}
}

// Load reads the configuration. An explicit path must exist; the default
// path is optional.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LEANAID_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LEANAID_OLLAMA_URL"); v != "" {
		c.Ollama.BaseURL = v
	}
	if v := os.Getenv("LEANAID_OLLAMA_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("LEANAID_OLLAMA_DISABLED"); v != "" {
		if disabled, err := strconv.ParseBool(v); err == nil && disabled {
			c.Ollama.Enabled = false
		}
	}
	if v := os.Getenv("LEANAID_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("LEANAID_WATCH_DIR"); v != "" {
		c.Watch.Dir = v
		c.Watch.Enabled = true
	}
	if v := os.Getenv("LEANAID_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			c.Debug = debug
		}
	}
}
