// Package config loads persistent console settings from
// <profileDir>/config.toml with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds persistent console settings.
type Config struct {
	// BackendURL is the MOA backend base URL.
	BackendURL string `toml:"backend_url"`
	// Streaming selects /invoke-stream (true) or /invoke (false) at
	// startup; /stream toggles it at runtime.
	Streaming bool `toml:"streaming"`
	// Theme is one of the built-in theme names.
	Theme string `toml:"theme"`
	// MaxHistory caps the number of persisted conversations (0 disables
	// persistence entirely).
	MaxHistory int `toml:"max_history"`
}

const filename = "config.toml"

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BackendURL: "http://localhost:8000",
		Streaming:  true,
		Theme:      "dark",
		MaxHistory: 100,
	}
}

// Load reads <profileDir>/config.toml over the defaults, then applies
// environment overrides. A missing or unreadable file is not an error.
func Load(profileDir string) Config {
	cfg := Defaults()
	data, err := os.ReadFile(filepath.Join(profileDir, filename))
	if err == nil {
		// A malformed file falls back to defaults rather than failing
		// startup; the operator can still point at a backend via env.
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			cfg = Defaults()
		}
	}
	applyEnv(&cfg)
	return cfg
}

// Save writes cfg to <profileDir>/config.toml, creating the directory if
// needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	f, err := os.Create(filepath.Join(profileDir, filename))
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MOA_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("MOA_THEME"); v != "" {
		cfg.Theme = v
	}
}
