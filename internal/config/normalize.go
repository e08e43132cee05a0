package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error

	if strings.TrimSpace(c.WorkspacesDirectory) == "" {
		c.WorkspacesDirectory = defaultWorkspacesDirectory
	}
	if c.WorkspacesDirectory, err = expandPath(c.WorkspacesDirectory); err != nil {
		return fmt.Errorf("workspaces_directory: %w", err)
	}

	c.Adapter = strings.TrimSpace(c.Adapter)

	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = defaultLogDir
	}
	if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}

	if strings.TrimSpace(c.Notifications.Command) == "" {
		c.Notifications.Command = defaultNotifyCommand
	}

	if c.Stats.Enabled {
		if strings.TrimSpace(c.Stats.Path) == "" {
			c.Stats.Path = defaultStatsPath
		}
		if c.Stats.Path, err = expandPath(c.Stats.Path); err != nil {
			return fmt.Errorf("stats.path: %w", err)
		}
	}

	return nil
}
