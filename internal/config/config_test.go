// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// LOAD TESTS
// =============================================================================

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath returned error: %v", err)
	}
	if cfg.Server.URL != "http://127.0.0.1:8080" {
		t.Errorf("Default server URL = %q", cfg.Server.URL)
	}
	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("Default timeout = %d", cfg.Server.TimeoutSecs)
	}
	if cfg.UI.DarkMode {
		t.Error("Dark mode must default to false when no value is stored")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
url = "http://example.com:9999"

[ui]
dark_mode = true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath returned error: %v", err)
	}
	if cfg.Server.URL != "http://example.com:9999" {
		t.Errorf("Server URL = %q", cfg.Server.URL)
	}
	if !cfg.UI.DarkMode {
		t.Error("Dark mode should load as true")
	}
	// Unset fields still fill from defaults.
	if cfg.Server.TimeoutSecs != 30 {
		t.Errorf("Timeout = %d, want default 30", cfg.Server.TimeoutSecs)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("NOTEPAD_SERVER_URL", "http://10.0.0.5:8080")

	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath returned error: %v", err)
	}
	if cfg.Server.URL != "http://10.0.0.5:8080" {
		t.Errorf("Server URL = %q, want env override", cfg.Server.URL)
	}
}

func TestValidateRejectsBadScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[server]\nurl = \"ftp://nope\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Error("Expected validation error for ftp scheme")
	}
}

// =============================================================================
// PREFERENCE TESTS
// =============================================================================

func TestPreferencesWriteThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	prefs := NewPreferences(cfg)

	if prefs.DarkMode() {
		t.Error("Dark mode should start false")
	}
	if err := prefs.SetDarkMode(true); err != nil {
		t.Fatalf("SetDarkMode returned error: %v", err)
	}

	// A fresh load must observe the persisted value.
	reloaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.UI.DarkMode {
		t.Error("Dark mode was not persisted")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, _ := LoadFromPath(path)
	cfg.Server.URL = "http://127.0.0.1:1234"
	cfg.History.Disabled = true
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	reloaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Server.URL != "http://127.0.0.1:1234" {
		t.Errorf("URL after round trip = %q", reloaded.Server.URL)
	}
	if !reloaded.History.Disabled {
		t.Error("History.Disabled lost in round trip")
	}
}
