// Package workspace enumerates the repository directories under a base
// directory.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ignoredDirs are build-output and cache directories never treated as
// repositories.
var ignoredDirs = map[string]bool{
	"node_modules": true,
	"__pycache__":  true,
	"target":       true,
	"build":        true,
	"dist":         true,
}

// Repo is one repository directory in the workspace.
type Repo struct {
	Name string
	Path string
}

// Options filter Discover.
type Options struct {
	// RequireGit keeps only directories containing a .git entry.
	RequireGit bool
	// Only restricts the result to the named repositories.
	Only []string
}

// Discover lists the immediate subdirectories of base, sorted by name.
// Names in opts.Only that don't match a directory are returned as missing.
func Discover(base string, opts Options) (repos []Repo, missing []string, err error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, nil, fmt.Errorf("reading workspace %s: %w", base, err)
	}

	want := make(map[string]bool, len(opts.Only))
	for _, n := range opts.Only {
		want[n] = true
	}

	found := make(map[string]bool)
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || strings.HasPrefix(name, ".") || ignoredDirs[name] {
			continue
		}
		if len(want) > 0 && !want[name] {
			continue
		}
		path := filepath.Join(base, name)
		if opts.RequireGit && !IsGitRepo(path) {
			continue
		}
		found[name] = true
		repos = append(repos, Repo{Name: name, Path: path})
	}

	sort.Slice(repos, func(i, j int) bool { return repos[i].Name < repos[j].Name })

	for _, n := range opts.Only {
		if !found[n] {
			missing = append(missing, n)
		}
	}
	return repos, missing, nil
}

// IsGitRepo reports whether dir has a .git directory or file (worktrees and
// submodules use a file).
func IsGitRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// ResolveBase returns dir when it exists, otherwise the current directory.
func ResolveBase(dir string) string {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return "."
}

// Exists reports whether dir exists and is a directory.
func Exists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
