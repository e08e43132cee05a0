package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.WorkspacesDirectory) == "" {
		return errors.New("workspaces_directory must be set")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Notifications.Enabled && strings.TrimSpace(c.Notifications.Command) == "" {
		return errors.New("notifications.command must be set when notifications are enabled")
	}
	if c.Stats.Enabled && strings.TrimSpace(c.Stats.Path) == "" {
		return errors.New("stats.path must be set when stats are enabled")
	}
	return nil
}
