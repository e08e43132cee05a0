package config

const (
	defaultWorkspacesDirectory = "~/.enwiro_envs"
	defaultLogDir              = "~/.local/state/enwiro"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultStatsPath           = "~/.local/share/enwiro/usage-stats.db"
	defaultNotifyCommand       = "notify-send"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		WorkspacesDirectory: defaultWorkspacesDirectory,
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
		Notifications: Notifications{
			Enabled: true,
			Command: defaultNotifyCommand,
		},
		Stats: Stats{
			Enabled: true,
			Path:    defaultStatsPath,
		},
	}
}
