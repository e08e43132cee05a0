package testsupport

import (
	"path/filepath"
	"testing"

	"enwiro/internal/config"
)

// NewConfig returns a config rooted in per-test temp directories, with
// notifications disabled and stats stored next to the workspaces.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.WorkspacesDirectory = filepath.Join(base, "envs")
	cfg.Logging.Dir = filepath.Join(base, "logs")
	cfg.Notifications.Enabled = false
	cfg.Stats.Path = filepath.Join(base, "usage-stats.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}
