package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeConfigFile writes a YAML config file into a temp dir.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// TestLoadConfigFile tests YAML loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads all fields", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
addr: ":8080"
mongo_uri: "mongodb://db:27017"
database: "cars_test"
jwt_secret: "file-secret"
fetch_timeout: "45s"
headless: false
user_agent: "custom-agent"
history_dir: "/var/lib/carmarketd"
`)

		file, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile failed: %v", err)
		}

		cfg := NewConfig()
		if err := file.ApplyTo(cfg); err != nil {
			t.Fatalf("ApplyTo failed: %v", err)
		}

		if cfg.Addr != ":8080" {
			t.Errorf("Addr: got %q", cfg.Addr)
		}
		if cfg.MongoURI != "mongodb://db:27017" {
			t.Errorf("MongoURI: got %q", cfg.MongoURI)
		}
		if cfg.Database != "cars_test" {
			t.Errorf("Database: got %q", cfg.Database)
		}
		if cfg.JWTSecret != "file-secret" {
			t.Errorf("JWTSecret: got %q", cfg.JWTSecret)
		}
		if cfg.FetchTimeout != 45*time.Second {
			t.Errorf("FetchTimeout: got %v", cfg.FetchTimeout)
		}
		if cfg.Headless {
			t.Error("Headless: explicit false should apply")
		}
		if cfg.UserAgent != "custom-agent" {
			t.Errorf("UserAgent: got %q", cfg.UserAgent)
		}
		if cfg.HistoryDir != "/var/lib/carmarketd" {
			t.Errorf("HistoryDir: got %q", cfg.HistoryDir)
		}
	})

	t.Run("absent keys leave defaults untouched", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `database: "cars_test"`)

		file, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile failed: %v", err)
		}

		cfg := NewConfig()
		if err := file.ApplyTo(cfg); err != nil {
			t.Fatalf("ApplyTo failed: %v", err)
		}

		if cfg.Addr != DefaultAddr {
			t.Errorf("Addr should keep its default, got %q", cfg.Addr)
		}
		if !cfg.Headless {
			t.Error("absent headless key must not override the default")
		}
		if cfg.Database != "cars_test" {
			t.Errorf("Database: got %q", cfg.Database)
		}
	})

	t.Run("missing file returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("malformed YAML returns an error", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "addr: [broken")

		if _, err := LoadConfigFile(path); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("unparseable fetch_timeout fails ApplyTo", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `fetch_timeout: "thirty seconds"`)

		file, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("LoadConfigFile failed: %v", err)
		}

		if err := file.ApplyTo(NewConfig()); err == nil {
			t.Fatal("expected duration parse error")
		}
	})
}

// TestFindConfigFile tests the search order.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("explicit path that exists", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "database: x")
		if got := FindConfigFile(path); got != path {
			t.Errorf("got %q, want %q", got, path)
		}
	})

	t.Run("explicit path that does not exist", func(t *testing.T) {
		t.Parallel()

		missing := filepath.Join(t.TempDir(), "missing.yaml")
		if got := FindConfigFile(missing); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}
