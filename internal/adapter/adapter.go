// Package adapter talks to window-manager adapter plugins to resolve and
// switch the active workspace.
package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"os/exec"

	"enwiro/internal/plugin"
)

// ErrNoAdapter is returned by the none-configured adapter.
var ErrNoAdapter = errors.New("no window-manager adapter is configured")

// Adapter resolves the active workspace and activates workspaces by name.
type Adapter interface {
	// ActiveEnvironmentName returns the environment name of the currently
	// focused workspace.
	ActiveEnvironmentName(ctx context.Context) (string, error)
	// Activate switches the window manager to the named workspace.
	Activate(ctx context.Context, name string) error
}

// External invokes an adapter plugin executable, e.g. enwiro-adapter-i3wm.
type External struct {
	executable string
}

// NewExternal builds an adapter client for the named adapter plugin. The
// executable is resolved through the regular plugin prefix convention.
func NewExternal(name string) *External {
	return &External{executable: plugin.KindAdapter.Prefix() + name}
}

func (e *External) ActiveEnvironmentName(ctx context.Context) (string, error) {
	stdout, err := e.run(ctx, "get-active-workspace-id")
	if err != nil {
		return "", fmt.Errorf("adapter: active workspace: %w", err)
	}
	// Workspace ids may carry a ":detail" suffix; the leading part is the
	// environment identity.
	name, _, _ := strings.Cut(strings.TrimSpace(stdout), ":")
	return strings.TrimSpace(name), nil
}

func (e *External) Activate(ctx context.Context, name string) error {
	if _, err := e.run(ctx, "activate", name); err != nil {
		return fmt.Errorf("adapter: activate %q: %w", name, err)
	}
	return nil
}

func (e *External) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, e.executable, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%w: %s", err, detail)
		}
		return "", err
	}
	return stdout.String(), nil
}

// None is the adapter used when no adapter is configured; every operation
// fails with ErrNoAdapter.
type None struct{}

func (None) ActiveEnvironmentName(context.Context) (string, error) {
	return "", ErrNoAdapter
}

func (None) Activate(context.Context, string) error {
	return ErrNoAdapter
}
