package cookbook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"unicode/utf8"

	"enwiro/internal/logging"
	"enwiro/internal/plugin"
)

// Client speaks the cookbook wire protocol to one external plugin
// executable: `list-recipes`, `cook <name>`, and the optional `metadata`
// subcommand.
type Client struct {
	plugin   plugin.Plugin
	priority int
	logger   *slog.Logger
}

// metadataPayload is the structured object an up-to-date cookbook prints
// for the metadata subcommand.
type metadataPayload struct {
	DefaultPriority *int `json:"default_priority"`
}

// NewClient builds a protocol client for the given plugin. The cookbook's
// priority is resolved once, here: a missing or failing metadata command is
// not an error and falls back to DefaultPriority.
func NewClient(ctx context.Context, p plugin.Plugin, logger *slog.Logger) *Client {
	logger = logging.NewComponentLogger(logger, "cookbook")

	client := &Client{plugin: p, priority: DefaultPriority, logger: logger}
	client.priority = client.fetchPriority(ctx)
	return client
}

// Name returns the plugin name, e.g. "git" for enwiro-cookbook-git.
func (c *Client) Name() string { return c.plugin.Name }

// Priority returns the cookbook's default priority for merged listings.
func (c *Client) Priority() int { return c.priority }

// ListRecipes runs `list-recipes` and parses one recipe per output line;
// a tab separates an optional description from the name.
func (c *Client) ListRecipes(ctx context.Context) ([]Recipe, error) {
	stdout, err := c.run(ctx, "list-recipes")
	if err != nil {
		return nil, fmt.Errorf("cookbook %s: list recipes: %w", c.plugin.Name, err)
	}

	var recipes []Recipe
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		name, description, _ := strings.Cut(line, "\t")
		recipes = append(recipes, Recipe{Name: name, Description: description})
	}
	return recipes, nil
}

// Cook runs `cook <name>` and returns the cooked environment path printed
// on stdout.
func (c *Client) Cook(ctx context.Context, name string) (string, error) {
	stdout, err := c.run(ctx, "cook", name)
	if err != nil {
		return "", fmt.Errorf("cookbook %s: cook %q: %w", c.plugin.Name, name, err)
	}
	path := strings.TrimSpace(stdout)
	if path == "" {
		return "", fmt.Errorf("cookbook %s: cook %q produced no path", c.plugin.Name, name)
	}
	return path, nil
}

func (c *Client) fetchPriority(ctx context.Context) int {
	stdout, err := c.run(ctx, "metadata")
	if err != nil {
		c.logger.Debug("metadata unavailable, using default priority",
			logging.String("cookbook", c.plugin.Name),
			logging.Int("priority", DefaultPriority),
			logging.Error(err))
		return DefaultPriority
	}

	var payload metadataPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil || payload.DefaultPriority == nil {
		c.logger.Debug("metadata unparseable, using default priority",
			logging.String("cookbook", c.plugin.Name),
			logging.Int("priority", DefaultPriority))
		return DefaultPriority
	}
	return *payload.DefaultPriority
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, c.plugin.Executable, args...)

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

	if !utf8.Valid(stdout.Bytes()) {
		return "", fmt.Errorf("invalid text output from %s", c.plugin.Executable)
	}
	return stdout.String(), nil
}
