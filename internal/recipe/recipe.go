// Package recipe holds the static table that maps a detected project type to
// the ordered toolchain commands that build it.
package recipe

import (
	"strings"

	"github.com/orgbuild-labs/orgbuild/internal/detect"
	"github.com/orgbuild-labs/orgbuild/internal/runner"
)

// Step is one stage of a build. Alternatives are tried in order and the
// first one that exits 0 satisfies the step.
type Step struct {
	Name         string
	Alternatives [][]string
	// Optional steps may fail without failing the build.
	Optional bool
	// Check marks lint/test stages that only run when checks are enabled.
	Check bool
	// Install marks dependency installation. Python needs one to succeed.
	Install bool
	// When gates the step on the repository contents. Nil means always.
	When func(p *detect.Probe) bool
}

// Recipe describes how to build one project type.
type Recipe struct {
	Type          detect.Type
	Steps         []Step
	ArtifactDir   string
	RequiredFiles []string
	// CleanDirs are removed before building when cleaning is enabled.
	CleanDirs  []string
	Skip       bool
	SkipReason string
	// NeedInstall fails the build when no Install step ran successfully.
	NeedInstall bool
}

// Options control plan resolution.
type Options struct {
	Checks bool
}

// For returns the recipe registered for t. Unregistered types are skipped.
func For(t detect.Type) Recipe {
	if r, ok := table[t]; ok {
		return r
	}
	return Recipe{Type: t, Skip: true, SkipReason: "unknown project type"}
}

// Plan resolves the steps of r that apply to the probed directory.
func Plan(r Recipe, p *detect.Probe, opts Options) []Step {
	var out []Step
	for _, s := range r.Steps {
		if s.Check && !opts.Checks {
			continue
		}
		if s.When != nil && (p == nil || !s.When(p)) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Custom builds a recipe from explicit command lines, each a required step.
func Custom(t detect.Type, lines []string) Recipe {
	r := Recipe{Type: t}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.Steps = append(r.Steps, Step{Name: line, Alternatives: [][]string{strings.Fields(line)}})
	}
	return r
}

// Command converts one alternative into a runner command.
func Command(alt []string) runner.Command {
	if len(alt) == 0 {
		return runner.Command{}
	}
	return runner.Command{Name: alt[0], Args: alt[1:]}
}

// Describe renders a step for display, joining alternatives with " || ".
func Describe(s Step) string {
	parts := make([]string, 0, len(s.Alternatives))
	for _, alt := range s.Alternatives {
		parts = append(parts, strings.Join(alt, " "))
	}
	d := strings.Join(parts, " || ")
	if s.Optional {
		d += " (optional)"
	}
	return d
}

func cmds(lines ...string) [][]string {
	out := make([][]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, strings.Fields(l))
	}
	return out
}

func hasGradleWrapper(p *detect.Probe) bool { return p.Has("gradlew") }
func noGradleWrapper(p *detect.Probe) bool  { return !p.Has("gradlew") }

// Commands renders every step of plan with Describe.
func Commands(plan []Step) []string {
	out := make([]string, 0, len(plan))
	for _, s := range plan {
		out = append(out, Describe(s))
	}
	return out
}
