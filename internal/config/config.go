package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/carmarket/carmarketd/internal/scrape"
)

// Default configuration values.
const (
	// DefaultAddr is the HTTP listen address. Port 5000 matches what the
	// frontend's API client is configured against.
	DefaultAddr = ":5000"

	// DefaultMongoURI points at a local MongoDB with no credentials.
	// Production deployments always override this.
	DefaultMongoURI = "mongodb://127.0.0.1:27017"

	// DefaultDatabase is the MongoDB database holding cars and users.
	DefaultDatabase = "carmarket"

	// DefaultFetchTimeout bounds a single headless page load. Marketplace
	// pages either render their meta tags well inside 30 seconds or serve
	// an interstitial that never settles; waiting longer only ties up a
	// Chrome process.
	DefaultFetchTimeout = scrape.DefaultFetchTimeout

	// DefaultShutdownTimeout is how long in-flight requests get to finish
	// on shutdown. An import holds a browser for up to DefaultFetchTimeout,
	// so this must be at least as generous.
	DefaultShutdownTimeout = 35 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "carmarketd"

	// EnvJWTSecret is the environment variable carrying the JWT signing
	// secret. Environment-only on purpose: secrets don't belong in flags,
	// where they leak into process listings.
	EnvJWTSecret = "CARMARKETD_JWT_SECRET"

	// EnvMongoURI optionally overrides the MongoDB connection string, for
	// the same reason: production URIs embed credentials.
	EnvMongoURI = "CARMARKETD_MONGO_URI"
)

// Config holds all configuration options for carmarketd.
// This struct is populated from CLI flags, the optional config file, and
// environment variables, then passed through the application via dependency
// injection rather than global state.
type Config struct {
	// Addr is the HTTP listen address in "host:port" or ":port" form.
	Addr string

	// MongoURI is the MongoDB connection string for the listing store.
	MongoURI string

	// Database is the MongoDB database name.
	Database string

	// JWTSecret is the HMAC key shared with the account service for
	// verifying bearer tokens. Never logged.
	JWTSecret string

	// FetchTimeout is the hard upper bound on one headless page load.
	FetchTimeout time.Duration

	// Headless controls whether scrape Chrome runs without a window.
	// Disabled only when debugging extraction locally.
	Headless bool

	// UserAgent overrides the browser User-Agent when non-empty.
	UserAgent string

	// HistoryDir is the directory for the SQLite import audit log.
	// Empty disables the audit log (and duplicate-import flagging).
	HistoryDir string

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is the explicit config file path, when the user
	// supplied one. Empty means search the default locations.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for local use.
// The JWT secret has no default; it must come from the environment or the
// config file.
func NewConfig() *Config {
	return &Config{
		Addr:         DefaultAddr,
		MongoURI:     DefaultMongoURI,
		Database:     DefaultDatabase,
		FetchTimeout: DefaultFetchTimeout,
		Headless:     true,
		HistoryDir:   XDGDataDir(),
	}
}

// ApplyEnv overlays environment-sourced values onto the config.
// Environment wins over the config file for secrets.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvJWTSecret); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.MongoURI = v
	}
}

// Validate checks the configuration for the serve command.
// Returns one of the package sentinel errors on the first problem found.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrInvalidAddr
	}
	if c.MongoURI == "" {
		return ErrNoMongoURI
	}
	if c.Database == "" {
		return ErrNoDatabase
	}
	if c.JWTSecret == "" {
		return ErrNoJWTSecret
	}
	if c.FetchTimeout <= 0 {
		return ErrInvalidFetchTimeout
	}
	return nil
}

// XDGDataDir returns the XDG data directory for carmarketd.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/carmarketd
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
