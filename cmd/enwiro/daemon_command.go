package main

import (
	"github.com/spf13/cobra"

	"enwiro/internal/daemon"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:          "daemon",
		Short:        "Run the recipe cache daemon (internal)",
		Hidden:       true,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := ctx.resolveRuntimeDir()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger("enwiro-daemon.log")
			return daemon.New(dir, logger).Run(cmd.Context())
		},
	}
}
