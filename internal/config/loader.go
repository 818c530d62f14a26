package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".carmarketd.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .carmarketd.yaml configuration file.
// Every field is optional; zero values leave the corresponding Config field
// untouched so flags and defaults still apply.
type File struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr,omitempty"`

	// MongoURI is the MongoDB connection string.
	MongoURI string `yaml:"mongo_uri,omitempty"`

	// Database is the MongoDB database name.
	Database string `yaml:"database,omitempty"`

	// JWTSecret is the bearer-token signing secret. The environment
	// variable takes precedence when both are set.
	JWTSecret string `yaml:"jwt_secret,omitempty"`

	// FetchTimeout bounds one headless page load, in Go duration syntax,
	// e.g. "30s". Kept as a string because YAML has no duration type.
	FetchTimeout string `yaml:"fetch_timeout,omitempty"`

	// Headless controls headless Chrome. Pointer so that an absent key is
	// distinguishable from an explicit false.
	Headless *bool `yaml:"headless,omitempty"`

	// UserAgent overrides the browser User-Agent.
	UserAgent string `yaml:"user_agent,omitempty"`

	// HistoryDir is the import audit log directory.
	HistoryDir string `yaml:"history_dir,omitempty"`
}

// ApplyTo overlays the file's values onto a Config.
// Returns an error when a value is present but unparseable.
func (f *File) ApplyTo(cfg *Config) error {
	if f.Addr != "" {
		cfg.Addr = f.Addr
	}
	if f.MongoURI != "" {
		cfg.MongoURI = f.MongoURI
	}
	if f.Database != "" {
		cfg.Database = f.Database
	}
	if f.JWTSecret != "" {
		cfg.JWTSecret = f.JWTSecret
	}
	if f.FetchTimeout != "" {
		d, err := time.ParseDuration(f.FetchTimeout)
		if err != nil {
			return fmt.Errorf("invalid fetch_timeout %q: %w", f.FetchTimeout, err)
		}
		cfg.FetchTimeout = d
	}
	if f.Headless != nil {
		cfg.Headless = *f.Headless
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.HistoryDir != "" {
		cfg.HistoryDir = f.HistoryDir
	}
	return nil
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified by
// the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .carmarketd.yaml in the current directory
// 3. Look for .carmarketd.yaml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
