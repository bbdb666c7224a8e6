package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/orgbuild-labs/orgbuild/internal/runner"
)

// Status is the outcome of checking one tool.
type Status string

const (
	StatusOK             Status = "ok"
	StatusOutdated       Status = "outdated"
	StatusMissing        Status = "missing"
	StatusUnknownVersion Status = "unknown-version"
)

// Tool describes an external command and its minimum version.
type Tool struct {
	Name       string
	Args       []string // defaults to --version
	MinVersion string   // empty means any version
	Purpose    string
}

// DefaultTools are the commands used by clone, discover and the build recipes.
var DefaultTools = []Tool{
	{Name: "git", MinVersion: "2.25.0", Purpose: "clone and pull"},
	{Name: "gh", Purpose: "repository discovery fallback"},
	{Name: "node", MinVersion: "16.0.0", Purpose: "node, react, vue, angular builds"},
	{Name: "npm", Purpose: "node builds"},
	{Name: "yarn", Purpose: "yarn builds"},
	{Name: "python3", Purpose: "python builds"},
	{Name: "pip3", Purpose: "python dependencies"},
	{Name: "mvn", Args: []string{"-v"}, Purpose: "maven builds"},
	{Name: "gradle", Purpose: "gradle builds without a wrapper"},
	{Name: "cargo", Purpose: "rust builds"},
	{Name: "go", Args: []string{"version"}, MinVersion: "1.21.0", Purpose: "go builds"},
}

// Result is the outcome for one tool.
type Result struct {
	Tool    Tool
	Status  Status
	Version string
	Err     error
}

// Check runs each tool's version command and classifies the result.
// Tools run sequentially; each gets a short timeout.
func Check(ctx context.Context, r runner.Runner, tools []Tool) []Result {
	results := make([]Result, 0, len(tools))
	for _, tool := range tools {
		results = append(results, checkTool(ctx, r, tool))
	}
	return results
}

func checkTool(ctx context.Context, r runner.Runner, tool Tool) Result {
	args := tool.Args
	if len(args) == 0 {
		args = []string{"--version"}
	}
	res := Result{Tool: tool}

	out, err := r.Run(ctx, runner.Command{Name: tool.Name, Args: args, Timeout: 10 * time.Second})
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			res.Status = StatusMissing
			return res
		}
		res.Status = StatusUnknownVersion
		res.Err = err
		return res
	}

	res.Version = ExtractVersion(out.Stdout + "\n" + out.Stderr)
	if res.Version == "" {
		res.Status = StatusUnknownVersion
		return res
	}
	if tool.MinVersion == "" {
		res.Status = StatusOK
		return res
	}
	ok, err := AtLeast(res.Version, tool.MinVersion)
	switch {
	case err != nil:
		res.Status = StatusUnknownVersion
		res.Err = err
	case ok:
		res.Status = StatusOK
	default:
		res.Status = StatusOutdated
	}
	return res
}

// Missing returns the names of tools that were not found.
func Missing(results []Result) []string {
	var names []string
	for _, r := range results {
		if r.Status == StatusMissing {
			names = append(names, r.Tool.Name)
		}
	}
	return names
}

// Print writes one line per tool in the doctor's [ OK ]/[MISS] style.
func Print(w io.Writer, results []Result) {
	fmt.Fprintln(w, "Toolchain check:")
	for _, r := range results {
		switch r.Status {
		case StatusOK:
			fmt.Fprintf(w, "  [ OK ] %s %s\n", r.Tool.Name, r.Version)
		case StatusOutdated:
			fmt.Fprintf(w, "  [WARN] %s %s is older than %s (%s)\n", r.Tool.Name, r.Version, r.Tool.MinVersion, r.Tool.Purpose)
		case StatusMissing:
			fmt.Fprintf(w, "  [MISS] %s not found (%s)\n", r.Tool.Name, r.Tool.Purpose)
		default:
			detail := "version not recognized"
			if r.Err != nil {
				detail = r.Err.Error()
			}
			fmt.Fprintf(w, "  [WARN] %s: %s\n", r.Tool.Name, strings.TrimSpace(detail))
		}
	}
}
