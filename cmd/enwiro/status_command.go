package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"enwiro/internal/daemon"
	"enwiro/internal/environments"
	"enwiro/internal/recipecache"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon, cache, and cookbook status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			stdout := ctx.stdout
			colorize := shouldColorize(stdout)

			runtimeDir, err := ctx.resolveRuntimeDir()
			if err != nil {
				return err
			}
			store := recipecache.NewStore(runtimeDir, ctx.ensureLogger("enwiro.log"))

			for _, line := range renderSectionHeader("Daemon", colorize) {
				fmt.Fprintln(stdout, line)
			}
			if daemon.IsRunning(runtimeDir) {
				fmt.Fprintln(stdout, renderStatusLine("Daemon", statusOK, "Running", colorize))
			} else {
				fmt.Fprintln(stdout, renderStatusLine("Daemon", statusWarn, "Not running (spawned on demand by `enwiro list-all`)", colorize))
			}
			fmt.Fprintln(stdout, renderStatusLine("Runtime dir", statusInfo, runtimeDir, colorize))

			if info, err := os.Stat(store.CachePath()); err == nil {
				age := time.Since(info.ModTime()).Round(time.Second)
				kind := statusOK
				detail := fmt.Sprintf("Fresh (age %s)", age)
				if age > recipecache.MaxAge {
					kind = statusWarn
					detail = fmt.Sprintf("Stale (age %s)", age)
				}
				fmt.Fprintln(stdout, renderStatusLine("Recipe cache", kind, detail, colorize))
			} else {
				fmt.Fprintln(stdout, renderStatusLine("Recipe cache", statusInfo, "Absent", colorize))
			}

			if mtime, ok := store.HeartbeatMtime(); ok {
				age := time.Since(mtime).Round(time.Second)
				fmt.Fprintln(stdout, renderStatusLine("Heartbeat", statusInfo, fmt.Sprintf("Last consumer %s ago", age), colorize))
			} else {
				fmt.Fprintln(stdout, renderStatusLine("Heartbeat", statusInfo, "No consumers yet", colorize))
			}

			envs, err := environments.List(cfg.WorkspacesDirectory)
			if err == nil {
				fmt.Fprintln(stdout, renderStatusLine("Environments", statusInfo, strconv.Itoa(len(envs)), colorize))
			}

			fmt.Fprintln(stdout)
			for _, line := range renderSectionHeader("Cookbooks", colorize) {
				fmt.Fprintln(stdout, line)
			}
			cookbooks := ctx.resolveCookbooks(cmd.Context())
			if len(cookbooks) == 0 {
				fmt.Fprintln(stdout, renderStatusLine("Cookbooks", statusWarn, "None discovered on PATH", colorize))
				return nil
			}
			rows := make([][]string, 0, len(cookbooks))
			for _, cb := range cookbooks {
				rows = append(rows, []string{cb.Name(), strconv.Itoa(cb.Priority())})
			}
			fmt.Fprintln(stdout, renderTable(
				[]string{"Cookbook", "Priority"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}
