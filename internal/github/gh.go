package github

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/orgbuild-labs/orgbuild/internal/runner"
)

// GHCLI lists repositories through the gh command-line tool.
type GHCLI struct {
	Runner  runner.Runner
	Timeout time.Duration
}

// List runs `gh repo list <org> --limit <limit>` and returns the repository
// names from the first tab-separated column.
func (g GHCLI) List(ctx context.Context, org string, limit int) ([]Repo, error) {
	timeout := g.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	out, err := g.Runner.Run(ctx, runner.Command{
		Name:    "gh",
		Args:    []string{"repo", "list", org, "--limit", strconv.Itoa(limit)},
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("running gh: %w", err)
	}
	if !out.Success() {
		return nil, fmt.Errorf("gh repo list exited %d: %s", out.ExitCode, runner.Preview(out.Stderr, 200))
	}
	return ParseGHList(out.Stdout), nil
}

// ParseGHList extracts repository names from gh's tabular output.
func ParseGHList(output string) []Repo {
	var repos []Repo
	for _, line := range strings.Split(output, "\n") {
		if line == "" || !strings.Contains(line, "\t") {
			continue
		}
		full := strings.SplitN(line, "\t", 2)[0]
		name := full[strings.LastIndex(full, "/")+1:]
		if name == "" {
			continue
		}
		repos = append(repos, Repo{Name: name, FullName: full, Source: SourceGH})
	}
	return repos
}
