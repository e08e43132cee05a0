package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newShowPathCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show-path [name]",
		Short: "Show the file system path of a given environment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			env, err := ctx.getOrCookEnvironment(cmd.Context(), name)
			if err != nil {
				return fmt.Errorf("identify active environment: %w", err)
			}
			fmt.Fprintln(ctx.stdout, env.Path)
			return nil
		},
	}
}
