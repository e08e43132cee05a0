// Package plugin discovers enwiro plugin executables by name prefix on the
// search path and alongside the host executable.
package plugin

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kind distinguishes the two plugin families enwiro talks to.
type Kind string

const (
	KindCookbook Kind = "cookbook"
	KindAdapter  Kind = "adapter"
)

// Prefix returns the executable-name prefix for this plugin kind, e.g.
// "enwiro-cookbook-" for cookbooks.
func (k Kind) Prefix() string {
	return "enwiro-" + string(k) + "-"
}

// Plugin describes one discovered plugin executable.
type Plugin struct {
	Name       string
	Kind       Kind
	Executable string
}

// Discover scans every directory on PATH plus the directory containing the
// current executable for plugins of the given kind. Duplicate names keep
// the first hit in search order. Results are sorted by name.
func Discover(kind Kind) []Plugin {
	dirs := filepath.SplitList(os.Getenv("PATH"))
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	return discoverIn(kind, dirs)
}

func discoverIn(kind Kind, dirs []string) []Plugin {
	prefix := kind.Prefix()
	seen := make(map[string]struct{})
	var results []Plugin

	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			base := entry.Name()
			if !strings.HasPrefix(base, prefix) {
				continue
			}
			name := strings.TrimPrefix(base, prefix)
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			path := filepath.Join(dir, base)
			if !isExecutable(path) {
				continue
			}
			seen[name] = struct{}{}
			results = append(results, Plugin{Name: name, Kind: kind, Executable: path})
		}
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode()&fs.FileMode(0o111) != 0
}
