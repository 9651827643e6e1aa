// Package config handles application configuration
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed config.sample.yaml
var sampleConfig string

// Backend names accepted in default_backend.
const (
	BackendFlatfile = "flatfile"
	BackendSQLite   = "sqlite"
)

// FlatfileConfig holds flat-file backend configuration
type FlatfileConfig struct {
	Path string `yaml:"path"`
}

// SQLiteConfig holds SQLite backend configuration
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// BackendsConfig holds configuration for all backends
type BackendsConfig struct {
	Flatfile FlatfileConfig `yaml:"flatfile"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
}

// Config represents the application configuration
type Config struct {
	Backends       BackendsConfig `yaml:"backends"`
	DefaultBackend string         `yaml:"default_backend"`
	Color          *bool          `yaml:"color"` // nil means auto-detect from the terminal
	Verbose        bool           `yaml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Backends: BackendsConfig{
			Flatfile: FlatfileConfig{
				Path: filepath.Join(GetDataDir(), "checklist.txt"),
			},
			SQLite: SQLiteConfig{
				Path: filepath.Join(GetDataDir(), "checklist.db"),
			},
		},
		DefaultBackend: BackendFlatfile,
	}
}

// Load loads configuration from the specified path, or the default XDG path
// if empty. If the config file doesn't exist, it creates one with defaults.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = filepath.Join(GetConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid YAML in config file: %w", err)
	}

	// Apply defaults for unset fields
	if cfg.DefaultBackend == "" {
		cfg.DefaultBackend = BackendFlatfile
	}
	if cfg.Backends.Flatfile.Path == "" {
		cfg.Backends.Flatfile.Path = filepath.Join(GetDataDir(), "checklist.txt")
	}
	if cfg.Backends.SQLite.Path == "" {
		cfg.Backends.SQLite.Path = filepath.Join(GetDataDir(), "checklist.db")
	}

	cfg.Backends.Flatfile.Path = ExpandPath(cfg.Backends.Flatfile.Path)
	cfg.Backends.SQLite.Path = ExpandPath(cfg.Backends.SQLite.Path)

	return cfg, nil
}

// save writes the configuration to the specified path
func (c *Config) save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// The embedded sample config documents every option and matches the
	// defaults, so a first run writes that instead of bare marshalled YAML.
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.DefaultBackend {
	case BackendFlatfile, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown default_backend: %q (must be 'flatfile' or 'sqlite')", c.DefaultBackend)
	}
}

// StorePath returns the persisted-state path for the configured backend.
func (c *Config) StorePath() string {
	if c.DefaultBackend == BackendSQLite {
		return c.Backends.SQLite.Path
	}
	return c.Backends.Flatfile.Path
}

// getXDGDir returns a directory path following XDG spec.
// envVar is the XDG environment variable (e.g., "XDG_CONFIG_HOME").
// fallbackPath is the relative path from home (e.g., ".config").
func getXDGDir(envVar, fallbackPath string) string {
	if xdgDir := os.Getenv(envVar); xdgDir != "" {
		return filepath.Join(xdgDir, "checklist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", fallbackPath, "checklist")
	}
	return filepath.Join(home, fallbackPath, "checklist")
}

// GetConfigDir returns the configuration directory following XDG spec
func GetConfigDir() string {
	return getXDGDir("XDG_CONFIG_HOME", ".config")
}

// GetDataDir returns the data directory following XDG spec
func GetDataDir() string {
	return getXDGDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}
