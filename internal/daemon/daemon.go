// Package daemon implements the background recipe-cache refresher and the
// process plumbing around it: runtime directory resolution, pid-file
// liveness probing, detached spawning, and the heartbeat-driven idle exit.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"enwiro/internal/cookbook"
	"enwiro/internal/logging"
	"enwiro/internal/plugin"
	"enwiro/internal/recipecache"
)

const (
	lockFileName = "daemon.lock"

	refreshInterval = recipecache.RefreshInterval
	sleepIncrement  = time.Second

	// idleTimeout is how long the daemon keeps refreshing after the last
	// consumer heartbeat before it exits.
	idleTimeout = 3 * time.Hour
)

// Daemon owns the refresh loop: every cycle it rediscovers cookbook
// plugins, aggregates their recipes, and atomically rewrites the cache.
type Daemon struct {
	dir    string
	store  *recipecache.Store
	logger *slog.Logger
	lock   *flock.Flock

	stop atomic.Bool
}

// New constructs a daemon operating in the given runtime directory.
func New(dir string, logger *slog.Logger) *Daemon {
	sessionLogger := logging.NewComponentLogger(logger, "daemon").With(
		logging.String("session_id", uuid.NewString()),
	)
	return &Daemon{
		dir:    dir,
		store:  recipecache.NewStore(dir, logger),
		logger: sessionLogger,
		lock:   flock.New(filepath.Join(dir, lockFileName)),
	}
}

// Run executes the refresh loop until a termination signal arrives or the
// idle timeout passes. When another daemon already holds the runtime lock
// this instance exits cleanly without touching any runtime files.
func (d *Daemon) Run(ctx context.Context) error {
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("create runtime directory: %w", err)
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire daemon lock: %w", err)
	}
	if !ok {
		d.logger.Info("another daemon instance holds the lock, exiting")
		return nil
	}
	defer func() {
		if err := d.lock.Unlock(); err != nil {
			d.logger.Warn("failed to release daemon lock", logging.Error(err))
		}
	}()

	if err := WritePIDFile(d.dir); err != nil {
		return err
	}
	defer RemovePIDFile(d.dir)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(signals)
	go func() {
		<-signals
		d.stop.Store(true)
	}()

	// Initial heartbeat so a freshly spawned daemon does not immediately
	// count as idle.
	if err := d.store.TouchHeartbeat(); err != nil {
		return err
	}

	d.logger.Info("daemon started", logging.Int("pid", os.Getpid()))

	for {
		d.refresh(ctx)

		for elapsed := time.Duration(0); elapsed < refreshInterval; elapsed += sleepIncrement {
			if d.stop.Load() {
				d.logger.Info("received termination signal, exiting")
				return nil
			}
			time.Sleep(sleepIncrement)
		}

		if d.idle(time.Now()) {
			d.logger.Info("idle timeout reached, exiting")
			return nil
		}
	}
}

// refresh rediscovers cookbook plugins and rewrites the cache. Plugins are
// discovered fresh each cycle so newly installed cookbooks show up without
// a restart.
func (d *Daemon) refresh(ctx context.Context) {
	plugins := plugin.Discover(plugin.KindCookbook)

	cookbooks := make([]cookbook.Cookbook, 0, len(plugins))
	for _, p := range plugins {
		cookbooks = append(cookbooks, cookbook.NewClient(ctx, p, d.logger))
	}

	content := cookbook.Collect(ctx, cookbooks, d.logger)
	if err := d.store.WriteAtomic(content); err != nil {
		d.logger.Error("failed to write cache", logging.Error(err))
	}
}

func (d *Daemon) idle(now time.Time) bool {
	mtime, ok := d.store.HeartbeatMtime()
	return isIdle(mtime, ok, now, idleTimeout)
}

// isIdle decides whether the daemon should exit for lack of consumers. A
// missing heartbeat never counts as idle; only an old one does.
func isIdle(heartbeat time.Time, exists bool, now time.Time, timeout time.Duration) bool {
	if !exists {
		return false
	}
	return now.Sub(heartbeat) > timeout
}

// EnsureRunning spawns a detached daemon process when none is alive. It
// returns true when a new daemon was spawned. Callers treat failures as
// best-effort: the synchronous fallback path still works without a daemon.
func EnsureRunning(dir string, logger *slog.Logger) (bool, error) {
	if IsRunning(dir) {
		return false, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return false, fmt.Errorf("resolve executable: %w", err)
	}

	logger.Info("spawning background daemon")
	proc := exec.Command(exe, "daemon")
	proc.Stdin = nil
	proc.Stdout = nil
	proc.Stderr = nil
	proc.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := proc.Start(); err != nil {
		return false, fmt.Errorf("spawn daemon process: %w", err)
	}
	if err := proc.Process.Release(); err != nil {
		return true, fmt.Errorf("release daemon process: %w", err)
	}
	return true, nil
}
