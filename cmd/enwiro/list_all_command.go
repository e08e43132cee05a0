package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"enwiro/internal/cookbook"
	"enwiro/internal/daemon"
	"enwiro/internal/environments"
	"enwiro/internal/logging"
	"enwiro/internal/recipecache"
	"enwiro/internal/usagestats"
)

// environmentCookbook marks existing environments in the merged listing so
// consumers can tell them apart from not-yet-cooked recipes.
const environmentCookbook = "_"

func newListAllCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list-all",
		Short: "List all existing environments as well as recipes to create environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListAll(ctx, cmd)
		},
	}
}

func runListAll(ctx *commandContext, cmd *cobra.Command) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger := ctx.ensureLogger("enwiro.log")

	// Environments first: a local directory listing is instant, so they
	// appear even when every cookbook is slow or broken.
	envs, err := environments.List(cfg.WorkspacesDirectory)
	if err != nil {
		return err
	}

	statsByName := map[string]usagestats.Stats{}
	if stats := ctx.statsStore(); stats != nil {
		all, err := stats.All(cmd.Context())
		if err != nil {
			logger.Warn("could not load usage stats", logging.Error(err))
		}
		for _, s := range all {
			statsByName[s.Name] = s
		}
	}

	now := time.Now()
	sort.SliceStable(envs, func(i, j int) bool {
		si := usagestats.Score(statsByName[envs[i].Name], now)
		sj := usagestats.Score(statsByName[envs[j].Name], now)
		if si != sj {
			return si > sj
		}
		return envs[i].Name < envs[j].Name
	})

	envNames := make(map[string]struct{}, len(envs))
	for _, env := range envs {
		envNames[env.Name] = struct{}{}
		recipe := cookbook.Recipe{Name: env.Name, Description: statsByName[env.Name].Description}
		fmt.Fprintln(ctx.stdout, cookbook.FormatLine(environmentCookbook, recipe))
	}

	runtimeDir, err := ctx.resolveRuntimeDir()
	if err != nil {
		return err
	}

	// Spawn the cache daemon when none is alive. Best-effort: a failure
	// here only means the slower synchronous path below.
	if ctx.runtimeDir == "" {
		spawned, err := daemon.EnsureRunning(runtimeDir, logger)
		switch {
		case err != nil:
			logger.Warn("could not ensure daemon is running", logging.Error(err))
		case spawned:
			logger.Info("started background recipe cache daemon")
			_ = ctx.resolveNotifier().Success(cmd.Context(), "Recipe cache daemon started")
		default:
			logger.Debug("daemon already running")
		}
	}

	store := recipecache.NewStore(runtimeDir, logger)
	content, ok := store.Read()
	if ok {
		_ = store.TouchHeartbeat()
	} else {
		logger.Debug("no cache available, falling back to synchronous recipe collection")
		content = cookbook.Collect(cmd.Context(), ctx.resolveCookbooks(cmd.Context()), logger)
	}

	// Recipes that already exist as environments are excluded; the
	// environment line above covers them.
	for _, line := range strings.Split(content, "\n") {
		if line == "" {
			continue
		}
		if entry, parsed := cookbook.ParseLine(line); parsed {
			if _, exists := envNames[entry.Name]; exists {
				continue
			}
		}
		fmt.Fprintln(ctx.stdout, line)
	}
	return nil
}
