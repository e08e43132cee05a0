package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"enwiro/internal/adapter"
	"enwiro/internal/config"
	"enwiro/internal/cookbook"
	"enwiro/internal/daemon"
	"enwiro/internal/environments"
	"enwiro/internal/logging"
	"enwiro/internal/notifications"
	"enwiro/internal/plugin"
	"enwiro/internal/recipecache"
	"enwiro/internal/usagestats"
)

// commandContext lazily wires the pieces commands share: config, logger,
// cookbook clients, the window-manager adapter, notifications, and usage
// stats. Tests inject fakes through the struct fields before running a
// command.
type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	stdout io.Writer

	// Overrides for tests; resolved from config and plugin discovery when
	// left unset.
	cookbooks   []cookbook.Cookbook
	cookbookSet bool
	wmAdapter   adapter.Adapter
	notifier    notifications.Service
	runtimeDir  string

	statsOnce sync.Once
	stats     *usagestats.Store
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		stdout:     os.Stdout,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the shared logger from the logging config. Commands
// write their output to stdout; the logger only carries diagnostics.
func (c *commandContext) ensureLogger(logFile string) *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{filepath.Join(cfg.Logging.Dir, logFile)},
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

func (c *commandContext) resolveRuntimeDir() (string, error) {
	if c.runtimeDir != "" {
		return c.runtimeDir, nil
	}
	return daemon.RuntimeDir()
}

func (c *commandContext) resolveCookbooks(ctx context.Context) []cookbook.Cookbook {
	if c.cookbookSet {
		return c.cookbooks
	}
	logger := c.ensureLogger("enwiro.log")
	plugins := plugin.Discover(plugin.KindCookbook)
	cookbooks := make([]cookbook.Cookbook, 0, len(plugins))
	for _, p := range plugins {
		cookbooks = append(cookbooks, cookbook.NewClient(ctx, p, logger))
	}
	c.cookbooks = cookbooks
	c.cookbookSet = true
	return c.cookbooks
}

func (c *commandContext) resolveAdapter() adapter.Adapter {
	if c.wmAdapter != nil {
		return c.wmAdapter
	}
	cfg, err := c.ensureConfig()
	if err != nil || strings.TrimSpace(cfg.Adapter) == "" {
		c.wmAdapter = adapter.None{}
		return c.wmAdapter
	}
	c.wmAdapter = adapter.NewExternal(cfg.Adapter)
	return c.wmAdapter
}

func (c *commandContext) resolveNotifier() notifications.Service {
	if c.notifier != nil {
		return c.notifier
	}
	cfg, _ := c.ensureConfig()
	c.notifier = notifications.NewService(cfg, c.ensureLogger("enwiro.log"))
	return c.notifier
}

// statsStore opens the usage-stats database once. A nil store means stats
// are disabled or unavailable; callers skip recording in that case.
func (c *commandContext) statsStore() *usagestats.Store {
	c.statsOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil || !cfg.Stats.Enabled || strings.TrimSpace(cfg.Stats.Path) == "" {
			return
		}
		store, err := usagestats.Open(cfg.Stats.Path)
		if err != nil {
			c.ensureLogger("enwiro.log").Warn("could not open usage stats", logging.Error(err))
			return
		}
		c.stats = store
	})
	return c.stats
}

// resolveEnvironmentName returns the explicit name when given, otherwise
// asks the window-manager adapter for the active workspace.
func (c *commandContext) resolveEnvironmentName(ctx context.Context, name string) (string, error) {
	if name != "" {
		return name, nil
	}
	resolved, err := c.resolveAdapter().ActiveEnvironmentName(ctx)
	if err != nil {
		return "", fmt.Errorf("determine active environment: %w", err)
	}
	return resolved, nil
}

// getOrCookEnvironment resolves a name to an existing environment, cooking
// it from a recipe when it does not exist yet. Cooking only happens for
// explicitly named environments; adapter-derived names never trigger it.
func (c *commandContext) getOrCookEnvironment(ctx context.Context, name string) (environments.Environment, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return environments.Environment{}, err
	}

	resolved, err := c.resolveEnvironmentName(ctx, name)
	if err != nil {
		return environments.Environment{}, err
	}

	flat := environments.FlattenName(resolved)
	env, getErr := environments.Get(cfg.WorkspacesDirectory, flat)
	if getErr == nil {
		return env, nil
	}
	if name == "" {
		return environments.Environment{}, getErr
	}
	env, err = c.cookEnvironment(ctx, resolved)
	if err != nil {
		return environments.Environment{}, fmt.Errorf("cook environment: %w", err)
	}
	return env, nil
}

// cookEnvironment materializes the named recipe into a new environment.
// The recipe cache is consulted first so only the owning cookbook is
// invoked; without a usable cache every cookbook is asked in turn.
func (c *commandContext) cookEnvironment(ctx context.Context, name string) (environments.Environment, error) {
	logger := c.ensureLogger("enwiro.log")
	cookbooks := c.resolveCookbooks(ctx)

	if owner, ok := c.findRecipeInCache(name); ok {
		for _, cb := range cookbooks {
			if cb.Name() != owner {
				continue
			}
			logger.Debug("found recipe in cache",
				logging.String("name", name),
				logging.String("cookbook", owner))
			path, err := cb.Cook(ctx, name)
			if err != nil {
				return environments.Environment{}, err
			}
			return c.createEnvironmentSymlink(ctx, cb.Name(), name, path)
		}
		logger.Warn("cache references cookbook not found in plugins",
			logging.String("name", name),
			logging.String("cookbook", owner))
	}

	for _, cb := range cookbooks {
		recipes, err := cb.ListRecipes(ctx)
		if err != nil {
			return environments.Environment{}, err
		}
		for _, recipe := range recipes {
			if recipe.Name != name {
				continue
			}
			path, err := cb.Cook(ctx, recipe.Name)
			if err != nil {
				return environments.Environment{}, err
			}
			return c.createEnvironmentSymlink(ctx, cb.Name(), name, path)
		}
	}

	logger.Error("no recipe available to cook environment", logging.String("name", name))
	return environments.Environment{}, fmt.Errorf("no recipe available to cook environment %q", name)
}

// findRecipeInCache reports the cookbook owning the named recipe according
// to the daemon cache. A stale or missing cache, or a fresh cache without
// the recipe, both report false; callers then fall back to asking every
// cookbook.
func (c *commandContext) findRecipeInCache(name string) (string, bool) {
	dir, err := c.resolveRuntimeDir()
	if err != nil {
		return "", false
	}
	store := recipecache.NewStore(dir, c.ensureLogger("enwiro.log"))
	content, ok := store.Read()
	if !ok {
		return "", false
	}
	return cookbook.FindInListing(content, name)
}

func (c *commandContext) createEnvironmentSymlink(ctx context.Context, cookbookName, name, target string) (environments.Environment, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return environments.Environment{}, err
	}

	c.ensureLogger("enwiro.log").Info("creating environment symlink",
		logging.String("name", name),
		logging.String("target", target))

	env, err := environments.CreateSymlink(cfg.WorkspacesDirectory, name, target)
	if err != nil {
		return environments.Environment{}, err
	}

	_ = c.resolveNotifier().Success(ctx, fmt.Sprintf("Created environment: %s", name))
	if stats := c.statsStore(); stats != nil {
		if err := stats.RecordMetadata(ctx, env.Name, cookbookName, ""); err != nil {
			c.ensureLogger("enwiro.log").Warn("could not record environment metadata", logging.Error(err))
		}
	}
	return env, nil
}

func (c *commandContext) closeStats() {
	if c.stats != nil {
		_ = c.stats.Close()
	}
}
