package daemon

import (
	"fmt"
	"os"
	"path/filepath"
)

// RuntimeDir returns the directory holding the daemon's runtime files (pid
// file, lock, cache, heartbeat). Prefers $XDG_RUNTIME_DIR/enwiro and falls
// back to the user cache directory plus "run".
func RuntimeDir() (string, error) {
	if base := os.Getenv("XDG_RUNTIME_DIR"); base != "" {
		return filepath.Join(base, "enwiro"), nil
	}
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("determine runtime or cache directory: %w", err)
	}
	return filepath.Join(cache, "run", "enwiro"), nil
}
