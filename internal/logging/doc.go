// Package logging constructs slog loggers with console and JSON handlers
// and provides shared attribute helpers used across enwiro components.
package logging
