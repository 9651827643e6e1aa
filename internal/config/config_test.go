package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"checklist/internal/config"
)

func TestLoadCreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.DefaultBackend != config.BackendFlatfile {
		t.Errorf("expected flatfile default backend, got %q", cfg.DefaultBackend)
	}
	if cfg.Backends.Flatfile.Path == "" {
		t.Error("expected a default flatfile path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if !strings.Contains(string(data), "default_backend") {
		t.Errorf("expected sample config content, got:\n%s", data)
	}
}

func TestLoadExistingConfig(t *testing.T) {
	t.Run("reads explicit values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `
default_backend: sqlite
backends:
  sqlite:
    path: /tmp/custom.db
verbose: true
color: false
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}

		if cfg.DefaultBackend != config.BackendSQLite {
			t.Errorf("expected sqlite backend, got %q", cfg.DefaultBackend)
		}
		if cfg.Backends.SQLite.Path != "/tmp/custom.db" {
			t.Errorf("expected custom sqlite path, got %q", cfg.Backends.SQLite.Path)
		}
		if !cfg.Verbose {
			t.Error("expected verbose enabled")
		}
		if cfg.Color == nil || *cfg.Color {
			t.Errorf("expected color forced off, got %v", cfg.Color)
		}
	})

	t.Run("applies defaults for unset fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("verbose: true\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load error: %v", err)
		}

		if cfg.DefaultBackend != config.BackendFlatfile {
			t.Errorf("expected flatfile default, got %q", cfg.DefaultBackend)
		}
		if cfg.Backends.Flatfile.Path == "" || cfg.Backends.SQLite.Path == "" {
			t.Error("expected default backend paths to be filled in")
		}
		if cfg.Color != nil {
			t.Errorf("expected color auto-detect (nil), got %v", cfg.Color)
		}
	})

	t.Run("rejects invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("default_backend: [broken\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := config.Load(path); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})
}

func TestValidate(t *testing.T) {
	cfg := config.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}

	cfg.DefaultBackend = "postgres"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestStorePath(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backends.Flatfile.Path = "/data/tasks.txt"
	cfg.Backends.SQLite.Path = "/data/tasks.db"

	cfg.DefaultBackend = config.BackendFlatfile
	if got := cfg.StorePath(); got != "/data/tasks.txt" {
		t.Errorf("expected flatfile path, got %q", got)
	}

	cfg.DefaultBackend = config.BackendSQLite
	if got := cfg.StorePath(); got != "/data/tasks.db" {
		t.Errorf("expected sqlite path, got %q", got)
	}
}

func TestExpandPath(t *testing.T) {
	t.Run("expands environment variables", func(t *testing.T) {
		t.Setenv("CHECKLIST_TEST_DIR", "/srv/data")

		got := config.ExpandPath("$CHECKLIST_TEST_DIR/tasks.txt")
		if got != "/srv/data/tasks.txt" {
			t.Errorf("expected env expansion, got %q", got)
		}
	})

	t.Run("expands tilde", func(t *testing.T) {
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}

		got := config.ExpandPath("~/tasks.txt")
		if got != filepath.Join(home, "tasks.txt") {
			t.Errorf("expected home expansion, got %q", got)
		}
	})

	t.Run("empty path stays empty", func(t *testing.T) {
		if got := config.ExpandPath(""); got != "" {
			t.Errorf("expected empty, got %q", got)
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	if got := config.GetConfigDir(); got != filepath.Join("/xdg/config", "checklist") {
		t.Errorf("unexpected config dir: %q", got)
	}
	if got := config.GetDataDir(); got != filepath.Join("/xdg/data", "checklist") {
		t.Errorf("unexpected data dir: %q", got)
	}
}
