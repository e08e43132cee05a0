package cookbook

import (
	"context"
	"fmt"
	"strings"
)

// DefaultPriority is assumed for cookbooks that do not expose a metadata
// command. Lower values sort first.
const DefaultPriority = 50

// Recipe is a named, not-yet-materialized candidate environment offered by
// a cookbook. Description is optional; an empty string means none.
type Recipe struct {
	Name        string
	Description string
}

// Cookbook is the capability every recipe source implements: the subprocess
// client in production, in-memory fakes in tests.
type Cookbook interface {
	// Name identifies the cookbook (the plugin name without its prefix).
	Name() string
	// Priority orders this cookbook's recipes in merged listings; lower
	// sorts first.
	Priority() int
	// ListRecipes enumerates every recipe the cookbook currently offers.
	ListRecipes(ctx context.Context) ([]Recipe, error)
	// Cook materializes the named recipe and returns the resulting
	// filesystem path.
	Cook(ctx context.Context, name string) (string, error)
}

// Entry is one parsed line of aggregated recipe output.
type Entry struct {
	Cookbook    string
	Name        string
	Description string
}

// FormatLine renders an aggregated recipe line: "cookbook: name" with an
// optional tab-separated trailing description.
func FormatLine(cookbookName string, recipe Recipe) string {
	if recipe.Description != "" {
		return fmt.Sprintf("%s: %s\t%s", cookbookName, recipe.Name, recipe.Description)
	}
	return fmt.Sprintf("%s: %s", cookbookName, recipe.Name)
}

// ParseLine parses an aggregated recipe line. It returns false for lines
// that do not follow the "cookbook: name" shape.
func ParseLine(line string) (Entry, bool) {
	cookbookName, rest, found := strings.Cut(line, ": ")
	if !found || cookbookName == "" {
		return Entry{}, false
	}
	name, description, _ := strings.Cut(rest, "\t")
	if name == "" {
		return Entry{}, false
	}
	return Entry{Cookbook: cookbookName, Name: name, Description: description}, true
}

// FindInListing scans aggregated recipe content for a recipe with the given
// name and returns the owning cookbook's name.
func FindInListing(content, recipeName string) (string, bool) {
	for _, line := range strings.Split(content, "\n") {
		entry, ok := ParseLine(line)
		if !ok {
			continue
		}
		if entry.Name == recipeName {
			return entry.Cookbook, true
		}
	}
	return "", false
}
