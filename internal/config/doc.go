// Package config loads and validates the enwiro TOML configuration.
package config
