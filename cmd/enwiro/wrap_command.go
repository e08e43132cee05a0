package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"enwiro/internal/logging"
)

func newWrapCommand(ctx *commandContext) *cobra.Command {
	var envName string

	cmd := &cobra.Command{
		Use:   "wrap <command> [-- args...]",
		Short: "Run an application/command inside an environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := ctx.ensureLogger("enwiro.log")

			// Resolution failures are soft: the command still runs, just
			// from the home directory without an environment.
			var envPath, resolvedName string
			env, err := ctx.getOrCookEnvironment(cmd.Context(), envName)
			if err != nil {
				logger.Warn("could not resolve environment", logging.Error(err))
				home, homeErr := os.UserHomeDir()
				if homeErr != nil {
					return fmt.Errorf("determine user home directory: %w", homeErr)
				}
				logger.Warn("no matching environment found, falling back to home directory")
				envPath = home
			} else {
				envPath = env.Path
				resolvedName = env.Name
			}

			if err := os.Chdir(envPath); err != nil {
				return fmt.Errorf("change directory: %w", err)
			}

			child := exec.Command(args[0], args[1:]...)
			child.Env = append(os.Environ(), "ENWIRO_ENV="+resolvedName)
			child.Stdin = os.Stdin
			child.Stdout = os.Stdout
			child.Stderr = os.Stderr
			if err := child.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					logger.Debug("child process exited", logging.Int("exit_code", exitErr.ExitCode()))
					return nil
				}
				return fmt.Errorf("execute command: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&envName, "environment", "e", "", "Environment to run in (defaults to the active workspace)")
	return cmd
}
