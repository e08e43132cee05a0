package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const pidFileName = "daemon.pid"

// WritePIDFile records the current process id in the runtime directory.
func WritePIDFile(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create runtime directory: %w", err)
	}
	pid := strconv.Itoa(os.Getpid())
	if err := os.WriteFile(filepath.Join(dir, pidFileName), []byte(pid), 0o644); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	return nil
}

// RemovePIDFile deletes the pid file. Safe to call when it does not exist.
func RemovePIDFile(dir string) {
	_ = os.Remove(filepath.Join(dir, pidFileName))
}

// IsRunning reports whether a daemon process recorded in the pid file is
// still alive, probed with a null signal. Any failure to read, parse, or
// signal means no running daemon.
func IsRunning(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, pidFileName))
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false
	}
	return unix.Kill(pid, 0) == nil
}
