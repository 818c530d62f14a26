// Package config provides configuration structures and utilities for
// carmarketd. It defines the server, scraping, and storage options, their
// defaults, validation, and the optional YAML configuration file loader.
package config
