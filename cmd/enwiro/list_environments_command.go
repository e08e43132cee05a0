package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"enwiro/internal/environments"
)

func newListEnvironmentsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list-environments",
		Short: "List all existing environments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			envs, err := environments.List(cfg.WorkspacesDirectory)
			if err != nil {
				return err
			}
			for _, env := range envs {
				fmt.Fprintln(ctx.stdout, env.Name)
			}
			return nil
		},
	}
}
