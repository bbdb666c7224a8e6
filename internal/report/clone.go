package report

import (
	"io"
	"strings"

	"github.com/orgbuild-labs/orgbuild/internal/branding"
	"github.com/orgbuild-labs/orgbuild/internal/clone"
)

// WriteCloneReport renders s to out.
func WriteCloneReport(out io.Writer, s *clone.Summary, f Format) error {
	w := &writer{w: out, f: f}
	w.header(displayOrg(s.Org)+" Clone Report", s.Started, s.Duration)

	w.section("Summary")
	w.field("Total Repositories", s.Total)
	w.field("Successful", len(s.Succeeded))
	w.field("Failed", len(s.Failed))
	if len(s.Skipped) > 0 {
		w.field("Skipped", len(s.Skipped))
	}
	w.blank()

	if len(s.Succeeded) > 0 {
		w.section("Successful Repositories")
		for _, r := range s.Results {
			if r.OK() {
				w.item(r.Repo + " (" + string(r.Status) + ")")
			}
		}
		w.blank()
	}

	if len(s.Failed) > 0 {
		w.section("Failed Repositories")
		for _, r := range s.Results {
			if r.OK() || r.Status == clone.StatusSkipped {
				continue
			}
			w.item(r.Repo + ": " + r.Reason)
			if len(r.Tried) > 0 {
				w.printf("      tried: %s\n", strings.Join(r.Tried, ", "))
			}
		}
		w.blank()
	}

	if len(s.Skipped) > 0 {
		w.section("Skipped Repositories")
		for _, r := range s.Results {
			if r.Status == clone.StatusSkipped {
				w.item(r.Repo + ": " + r.Reason)
			}
		}
		w.blank()
	}

	var next []string
	if len(s.Failed) > 0 {
		next = append(next, "Review failed repositories and check access or repository names")
	}
	next = append(next, "Run '"+branding.CLIName()+" build' to build the cloned repositories")
	w.steps(next)
	return w.err
}

func displayOrg(org string) string {
	if org == "" {
		return branding.DisplayName()
	}
	return org
}
