package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoJWTSecret is returned when the server is started without a JWT
	// signing secret. Without one, every import request would be rejected,
	// so refusing to start is clearer than failing every call.
	ErrNoJWTSecret = errors.New("no JWT secret configured: set " + EnvJWTSecret + " or jwt_secret in the config file")

	// ErrNoMongoURI is returned when the MongoDB connection string is empty.
	ErrNoMongoURI = errors.New("no MongoDB URI configured")

	// ErrNoDatabase is returned when the MongoDB database name is empty.
	ErrNoDatabase = errors.New("no database name configured")

	// ErrInvalidAddr is returned when the listen address is empty.
	ErrInvalidAddr = errors.New("invalid listen address: must not be empty")

	// ErrInvalidFetchTimeout is returned when the fetch timeout is not positive.
	// A timeout of zero or negative would fail every page load immediately.
	ErrInvalidFetchTimeout = errors.New("invalid fetch timeout: must be positive")
)
