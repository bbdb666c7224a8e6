package report

import (
	"fmt"
	"io"

	"github.com/orgbuild-labs/orgbuild/internal/branding"
	"github.com/orgbuild-labs/orgbuild/internal/build"
)

// WriteBuildReport renders s to out. org titles the report.
func WriteBuildReport(out io.Writer, s *build.Summary, org string, f Format) error {
	w := &writer{w: out, f: f}
	w.header(displayOrg(org)+" Build Report", s.Started, s.Duration)

	w.section("Build Summary")
	w.field("Total Repositories", s.Total)
	w.field("Successful", len(s.Successful))
	w.field("Failed", len(s.Failed))
	w.field("Skipped", len(s.Skipped))
	w.field("Success Rate", fmt.Sprintf("%.1f%%", s.SuccessRate()*100))
	w.blank()

	if len(s.Successful) > 0 {
		w.section("Successful Builds")
		for _, r := range byStatus(s, build.StatusSuccess) {
			w.item(fmt.Sprintf("%s (%s) %.2fs, %d commands", r.Repo, r.Type, r.Duration.Seconds(), len(r.Commands)))
		}
		w.blank()
	}

	if len(s.Failed) > 0 {
		w.section("Failed Builds")
		for _, r := range byStatus(s, build.StatusFailed) {
			w.item(fmt.Sprintf("%s (%s): %s", r.Repo, orUnknown(string(r.Type)), r.Reason))
			for _, e := range r.Errors {
				w.printf("      %s\n", e)
			}
		}
		w.blank()
	}

	if len(s.Skipped) > 0 {
		w.section("Skipped Builds")
		for _, r := range byStatus(s, build.StatusSkipped) {
			w.item(r.Repo + ": " + orUnknown(r.Reason))
		}
		w.blank()
	}

	var next []string
	if len(s.Failed) > 0 {
		next = append(next,
			"Review failed builds and fix issues",
			"Re-run with --verbose or --log-file for full command output")
	}
	next = append(next, "Deploy successful builds", "Run '"+branding.CLIName()+" doctor' if toolchains are missing")
	w.steps(next)
	return w.err
}

func byStatus(s *build.Summary, status build.Status) []build.Result {
	var out []build.Result
	for _, r := range s.Results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
