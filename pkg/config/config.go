package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	DefaultCatalogURL  = "http://localhost:5173"
	DefaultPageSize    = 100
	DefaultListenAddr  = ":9237"
	DefaultSnapshotTTL = 12 * time.Hour
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	CatalogURL      string `json:"catalog_url,omitempty"`
	PageSize        int    `json:"page_size,omitempty"`
	AccentColor     string `json:"accent_color,omitempty"`
	SnapshotTTL     string `json:"snapshot_ttl,omitempty"`
	DisableSnapshot bool   `json:"disable_snapshot,omitempty"`
	ListenAddr      string `json:"listen_addr,omitempty"`
	LogLevel        string `json:"log_level,omitempty"`
}

// getConfigPath returns the absolute path to ~/.timetabler.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".timetabler.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just return an empty default configuration
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv reads the file and applies TIMETABLER_* environment overrides on top.
// The result is meant for running commands, not for saving back.
func LoadWithEnv() (*AppConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ApplyEnv overrides fields from the environment.
func (c *AppConfig) ApplyEnv() {
	c.CatalogURL = GetEnv(EnvCatalogURL, c.CatalogURL)
	c.PageSize = GetInt(EnvPageSize, c.PageSize)
	c.ListenAddr = GetEnv(EnvListenAddr, c.ListenAddr)
	c.LogLevel = GetEnv(EnvLogLevel, c.LogLevel)
	c.SnapshotTTL = GetEnv(EnvSnapshotTTL, c.SnapshotTTL)
	c.DisableSnapshot = GetBool(EnvDisableSnapshot, c.DisableSnapshot)
}

// Catalog returns the catalog URL, falling back to DefaultCatalogURL.
func (c *AppConfig) Catalog() string {
	if c.CatalogURL == "" {
		return DefaultCatalogURL
	}
	return c.CatalogURL
}

// Page returns the page size, falling back to DefaultPageSize.
func (c *AppConfig) Page() int {
	if c.PageSize <= 0 {
		return DefaultPageSize
	}
	return c.PageSize
}

// Addr returns the API listen address, falling back to DefaultListenAddr.
func (c *AppConfig) Addr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// SnapshotDuration parses SnapshotTTL, falling back to DefaultSnapshotTTL.
func (c *AppConfig) SnapshotDuration() time.Duration {
	if d, err := time.ParseDuration(c.SnapshotTTL); err == nil && d > 0 {
		return d
	}
	return DefaultSnapshotTTL
}
