// Package environments manages the workspaces directory: every environment
// is a directory (or symlink to one) whose name is the environment name.
package environments

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Environment is a materialized, named filesystem path the user can switch
// into.
type Environment struct {
	Name string
	Path string
}

// List returns every environment under the workspaces directory, sorted by
// name. Regular files are ignored; symlinks count when they resolve to a
// directory.
func List(workspacesDir string) ([]Environment, error) {
	entries, err := os.ReadDir(workspacesDir)
	if err != nil {
		return nil, fmt.Errorf("read workspaces directory: %w", err)
	}

	var results []Environment
	for _, entry := range entries {
		path := filepath.Join(workspacesDir, entry.Name())
		info, err := os.Stat(path) // follows symlinks
		if err != nil || !info.IsDir() {
			continue
		}
		results = append(results, Environment{Name: entry.Name(), Path: path})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results, nil
}

// Get returns the named environment or an error when it does not exist.
func Get(workspacesDir, name string) (Environment, error) {
	path := filepath.Join(workspacesDir, name)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return Environment{}, fmt.Errorf("environment %q does not exist", name)
	}
	return Environment{Name: name, Path: path}, nil
}

// FlattenName converts a recipe name to an environment directory name;
// slashes would otherwise nest the environment under subdirectories.
func FlattenName(name string) string {
	return strings.ReplaceAll(name, "/", "-")
}

// CreateSymlink links a cooked path into the workspaces directory under the
// flattened recipe name and returns the resulting environment.
func CreateSymlink(workspacesDir, name, target string) (Environment, error) {
	flat := FlattenName(name)
	linkPath := filepath.Join(workspacesDir, flat)
	if err := os.Symlink(target, linkPath); err != nil {
		return Environment{}, fmt.Errorf("link environment %q: %w", flat, err)
	}
	return Get(workspacesDir, flat)
}
