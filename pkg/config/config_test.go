package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestConfigLoadSave(t *testing.T) {
	// Create a temporary directory to act as the user's home directory
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	cfg.CatalogURL = "https://catalog.example"
	cfg.PageSize = 50
	cfg.AccentColor = "42"
	cfg.SnapshotTTL = "1h"

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	configPath := filepath.Join(tempDir, ".timetabler.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}
	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configPath := filepath.Join(tempDir, ".timetabler.json")
	if err := os.WriteFile(configPath, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestConfigDefaultsAndEnv(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	cfg, err := LoadWithEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Catalog() != DefaultCatalogURL || cfg.Page() != DefaultPageSize || cfg.Addr() != DefaultListenAddr {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if cfg.SnapshotDuration() != DefaultSnapshotTTL {
		t.Errorf("expected default snapshot TTL, got %v", cfg.SnapshotDuration())
	}

	t.Setenv(EnvCatalogURL, "http://env.example")
	t.Setenv(EnvPageSize, "25")
	t.Setenv(EnvSnapshotTTL, "30m")
	t.Setenv(EnvDisableSnapshot, "true")

	cfg, _ = LoadWithEnv()
	if cfg.Catalog() != "http://env.example" || cfg.Page() != 25 || !cfg.DisableSnapshot {
		t.Errorf("expected environment overrides, got %+v", cfg)
	}
	if cfg.SnapshotDuration() != 30*time.Minute {
		t.Errorf("expected 30m snapshot TTL, got %v", cfg.SnapshotDuration())
	}
}
