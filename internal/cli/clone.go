package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orgbuild-labs/orgbuild/internal/clone"
	"github.com/orgbuild-labs/orgbuild/internal/config"
	"github.com/orgbuild-labs/orgbuild/internal/deploy"
	"github.com/orgbuild-labs/orgbuild/internal/github"
	"github.com/orgbuild-labs/orgbuild/internal/report"
)

var (
	cloneWorkers     int
	cloneDepth       int
	cloneRefresh     bool
	cloneRepos       []string
	cloneSetupDeploy string
	cloneFormat      string
)

func init() {
	cloneCmd.Flags().IntVar(&cloneWorkers, "workers", 4, "Repositories to clone in parallel")
	cloneCmd.Flags().IntVar(&cloneDepth, "depth", 0, "Shallow clone depth (0 clones full history)")
	cloneCmd.Flags().BoolVar(&cloneRefresh, "refresh", false, "Ignore the cached repository list")
	cloneCmd.Flags().StringArrayVar(&cloneRepos, "repo", nil, "Only clone this repository (repeatable)")
	cloneCmd.Flags().StringVar(&cloneSetupDeploy, "setup-deploy", "", "Seed cloned repositories with deployment files from this template directory")
	cloneCmd.Flags().StringVar(&cloneFormat, "format", "text", "Report format: text or markdown")
	rootCmd.AddCommand(cloneCmd)
}

var cloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Clone or update every repository of the organization",
	Long: `Discover the organization's repositories and clone each one into the
workspace. Existing checkouts are pulled; a checkout that fails to pull is
cloned fresh. A report is written to <dir>/clone_report.txt (or .md).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(cloneFormat)
		if err != nil {
			return err
		}
		s := config.Current()
		f, err := loadFleet(s)
		if err != nil {
			return err
		}
		org := orgFor(s, f)

		repos := discoverRepos(cmd.Context(), s, f, org, cloneRefresh, 100)
		repos, unknown := filterRepos(repos, cloneRepos)
		for _, name := range unknown {
			repos = append(repos, github.Repo{Name: name, Source: "flag"})
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Cloning %d repositories of %s into %s\n", len(repos), org, s.BaseDir)

		c := &clone.Cloner{
			Runner: newRunner(),
			Logger: logger,
			Fleet:  f,
			Options: clone.Options{
				Workers:      s.Workers,
				CloneTimeout: s.CloneTimeout,
				PullTimeout:  s.PullTimeout,
				ShallowDepth: cloneDepth,
			},
		}
		summary, err := c.CloneAll(cmd.Context(), s.BaseDir, org, repos)
		if err != nil {
			return err
		}
		printCloneResults(out, summary)

		if cloneSetupDeploy != "" {
			seedDeploy(out, cloneSetupDeploy, org, summary)
		}

		path, err := report.WriteFile(s.BaseDir, "clone", format, func(w io.Writer, f report.Format) error {
			return report.WriteCloneReport(w, summary, f)
		})
		if err != nil {
			return err
		}

		lines := []string{
			fmt.Sprintf("Duration:   %.2fs", summary.Duration.Seconds()),
			fmt.Sprintf("Attempted:  %d", summary.Total),
			fmt.Sprintf("Successful: %d", len(summary.Succeeded)),
			fmt.Sprintf("Failed:     %d", len(summary.Failed)),
			"Report:     " + path,
		}
		fmt.Fprintln(out, report.Card("Clone complete", lines, len(summary.Failed) == 0, report.ColorEnabled(out, noColor)))

		if summary.Total > 0 && len(summary.Succeeded) == 0 {
			return &ExitError{Code: 1, Err: fmt.Errorf("no repository could be cloned")}
		}
		return nil
	},
}

// filterRepos keeps the repositories named in only (all when empty) and
// returns the names that matched nothing.
func filterRepos(repos []github.Repo, only []string) ([]github.Repo, []string) {
	if len(only) == 0 {
		return repos, nil
	}
	want := make(map[string]bool, len(only))
	for _, n := range only {
		want[n] = true
	}
	var kept []github.Repo
	for _, r := range repos {
		if want[r.Name] {
			kept = append(kept, r)
			delete(want, r.Name)
		}
	}
	var unknown []string
	for _, n := range only {
		if want[n] {
			unknown = append(unknown, n)
		}
	}
	return kept, unknown
}

func printCloneResults(w io.Writer, s *clone.Summary) {
	for i, r := range s.Results {
		switch {
		case r.OK():
			fmt.Fprintf(w, "  [ OK ] %2d. %s (%s)\n", i+1, r.Repo, r.Status)
		case r.Status == clone.StatusSkipped:
			fmt.Fprintf(w, "  [SKIP] %2d. %s: %s\n", i+1, r.Repo, r.Reason)
		default:
			fmt.Fprintf(w, "  [FAIL] %2d. %s: %s\n", i+1, r.Repo, r.Reason)
		}
	}
}

func seedDeploy(w io.Writer, template, org string, s *clone.Summary) {
	seeder := &deploy.Seeder{Template: template, Org: org, Logger: logger}
	fmt.Fprintln(w, "Deployment setup:")
	for _, r := range s.Results {
		if r.Status != clone.StatusCloned {
			continue
		}
		res, err := seeder.Seed(r.Path)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", r.Repo, err)
			logger.Warn("deployment setup failed", zap.String("repo", r.Repo), zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %s (%s): %d files copied\n", r.Repo, res.Type, len(res.Copied))
	}
}
