// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and the persisted user
// preferences for notepad-tui.
//
// Configuration lives at ~/.notepad/config.toml. Missing file or missing
// keys fall back to built-in defaults; NOTEPAD_SERVER_URL overrides the
// backend URL from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete notepad-tui configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	UI      UIConfig      `toml:"ui"`
	History HistoryConfig `toml:"history"`

	// path the config was loaded from, for write-through saves.
	path string
}

// ServerConfig contains backend connection configuration.
type ServerConfig struct {
	// URL is the LLM Notepad backend base URL.
	URL string `toml:"url"`
	// TimeoutSecs bounds non-streaming requests.
	TimeoutSecs int `toml:"timeout_secs"`
}

// UIConfig contains user interface configuration.
type UIConfig struct {
	// DarkMode is the persisted display preference; absent means false.
	DarkMode bool `toml:"dark_mode"`
	// PlainMode skips the TUI and starts the line-mode REPL.
	PlainMode bool `toml:"plain_mode"`
}

// HistoryConfig contains prompt history configuration.
type HistoryConfig struct {
	// Disabled turns off prompt history recording.
	Disabled bool `toml:"disabled"`
	// Path overrides the history database location (default ~/.notepad/history.db).
	Path string `toml:"path"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:         "http://127.0.0.1:8080",
			TimeoutSecs: 30,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// Dir returns the notepad config directory (~/.notepad), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	dir := filepath.Join(home, ".notepad")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("cannot create config directory: %w", err)
	}
	return dir, nil
}

// Path returns the config file path (~/.notepad/config.toml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the prompt history database path, honoring the
// configured override.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads the config file, falling back to defaults when it does not
// exist. Environment overrides apply after the file.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads a config file from an explicit location.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save writes the config back to the location it was loaded from.
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
		c.path = path
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open config for writing: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("NOTEPAD_SERVER_URL"); url != "" {
		c.Server.URL = url
	}
}

// setDefaults fills zero values with defaults.
func (c *Config) setDefaults() {
	if c.Server.URL == "" {
		c.Server.URL = "http://127.0.0.1:8080"
	}
	if c.Server.TimeoutSecs <= 0 {
		c.Server.TimeoutSecs = 30
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server url must be http or https, got %q", c.Server.URL)
	}
	return nil
}

// =============================================================================
// PREFERENCES
// =============================================================================

// Preferences is the capability the UI uses to read and persist the display
// theme, kept narrow so the core is testable without a real file.
type Preferences interface {
	// DarkMode reports the persisted preference; absence defaults to false.
	DarkMode() bool
	// SetDarkMode persists the preference write-through.
	SetDarkMode(enabled bool) error
}

// filePrefs persists the preference through the config file.
type filePrefs struct {
	mu  sync.Mutex
	cfg *Config
}

// NewPreferences wraps a loaded config as the preference store.
func NewPreferences(cfg *Config) Preferences {
	return &filePrefs{cfg: cfg}
}

func (p *filePrefs) DarkMode() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg.UI.DarkMode
}

func (p *filePrefs) SetDarkMode(enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg.UI.DarkMode = enabled
	return p.cfg.Save()
}
