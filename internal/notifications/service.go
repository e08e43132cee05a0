package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"enwiro/internal/config"
	"enwiro/internal/logging"
)

// Service is the notification surface exposed to commands and the daemon.
// Delivery is best-effort; callers treat failures as log-only events.
type Service interface {
	Success(ctx context.Context, message string) error
	Error(ctx context.Context, message string) error
}

// NewService builds a desktop notification service backed by the configured
// command (notify-send by default). When notifications are disabled, a noop
// implementation is returned.
func NewService(cfg *config.Config, logger *slog.Logger) Service {
	if cfg == nil || !cfg.Notifications.Enabled {
		return noopService{}
	}
	command := strings.TrimSpace(cfg.Notifications.Command)
	if command == "" {
		return noopService{}
	}
	return &desktopService{
		command: command,
		logger:  logging.NewComponentLogger(logger, "notifications"),
	}
}

type desktopService struct {
	command string
	logger  *slog.Logger
}

func (d *desktopService) Success(ctx context.Context, message string) error {
	return d.send(ctx, "dialog-information", message)
}

func (d *desktopService) Error(ctx context.Context, message string) error {
	return d.send(ctx, "dialog-error", message)
}

func (d *desktopService) send(ctx context.Context, icon, message string) error {
	cmd := exec.CommandContext(ctx, d.command, "--icon", icon, "enwiro", message)
	if err := cmd.Run(); err != nil {
		d.logger.Warn("could not deliver desktop notification",
			logging.String("message", message),
			logging.Error(err))
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

type noopService struct{}

func (noopService) Success(context.Context, string) error { return nil }

func (noopService) Error(context.Context, string) error { return nil }
