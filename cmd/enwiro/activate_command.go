package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"enwiro/internal/logging"
)

func newActivateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <name>",
		Short: "Activate a workspace for a given environment, creating it if needed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if err := ctx.resolveAdapter().Activate(cmd.Context(), name); err != nil {
				return fmt.Errorf("activate workspace: %w", err)
			}

			// Materialize the environment on disk; activation already
			// succeeded, so a cooking failure only warns.
			if _, err := ctx.getOrCookEnvironment(cmd.Context(), name); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not set up environment: %v\n", err)
			}

			if stats := ctx.statsStore(); stats != nil {
				if err := stats.RecordActivation(cmd.Context(), name); err != nil {
					ctx.ensureLogger("enwiro.log").Warn("could not record activation", logging.Error(err))
				}
			}
			return nil
		},
	}
}
