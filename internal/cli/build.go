package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/orgbuild-labs/orgbuild/internal/build"
	"github.com/orgbuild-labs/orgbuild/internal/config"
	"github.com/orgbuild-labs/orgbuild/internal/report"
	"github.com/orgbuild-labs/orgbuild/internal/workspace"
)

var (
	buildWorkers int
	buildTimeout time.Duration
	buildChecks  bool
	buildClean   bool
	buildVerify  bool
	buildRepos   []string
	buildFormat  string
)

func init() {
	buildCmd.Flags().IntVar(&buildWorkers, "workers", 4, "Repositories to build in parallel (1 builds sequentially)")
	buildCmd.Flags().DurationVar(&buildTimeout, "timeout", 10*time.Minute, "Timeout for each build command")
	buildCmd.Flags().BoolVar(&buildChecks, "checks", false, "Also run lint and test stages")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "Remove artifact and dependency directories first")
	buildCmd.Flags().BoolVar(&buildVerify, "verify-artifacts", false, "Require a non-empty artifact directory")
	buildCmd.Flags().StringArrayVar(&buildRepos, "repo", nil, "Only build this repository (repeatable)")
	buildCmd.Flags().StringVar(&buildFormat, "format", "markdown", "Report format: text or markdown")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Detect and build every repository in the workspace",
	Long: `Classify each workspace directory by its marker files and run the
matching toolchain commands. Per-repository failures are collected, not
fatal. A report is written to <dir>/build_report.md (or .txt) and the
command exits 1 when any build failed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := report.ParseFormat(buildFormat)
		if err != nil {
			return err
		}
		s := config.Current()
		f, err := loadFleet(s)
		if err != nil {
			return err
		}

		base := workspace.ResolveBase(s.BaseDir)
		repos, missing, err := workspace.Discover(base, workspace.Options{Only: buildRepos})
		if err != nil {
			return fmt.Errorf("reading workspace: %w", err)
		}
		for _, name := range missing {
			logger.Warn("requested repository not in workspace", zap.String("repo", name))
		}

		out := cmd.OutOrStdout()
		if len(repos) == 0 {
			fmt.Fprintf(out, "No project directories found in %s\n", base)
			return nil
		}

		dirs := make([]string, 0, len(repos))
		fmt.Fprintf(out, "Found %d projects in %s:\n", len(repos), base)
		for i, r := range repos {
			if f.Excluded(r.Name) {
				fmt.Fprintf(out, "  %2d. %s (excluded by fleet manifest)\n", i+1, r.Name)
				continue
			}
			fmt.Fprintf(out, "  %2d. %s\n", i+1, r.Name)
			dirs = append(dirs, r.Path)
		}

		b := &build.Builder{
			Runner: newRunner(),
			Logger: logger,
			Fleet:  f,
			Options: build.Options{
				Workers:         s.Workers,
				Checks:          buildChecks,
				Clean:           buildClean,
				VerifyArtifacts: buildVerify,
				Timeout:         s.CommandTimeout,
			},
		}
		summary := b.BuildAll(cmd.Context(), dirs)
		printBuildResults(out, summary)

		org := orgFor(s, f)
		path, err := report.WriteFile(base, "build", format, func(w io.Writer, f report.Format) error {
			return report.WriteBuildReport(w, summary, org, f)
		})
		if err != nil {
			return err
		}

		lines := []string{
			fmt.Sprintf("Duration:     %.1fs", summary.Duration.Seconds()),
			fmt.Sprintf("Total:        %d", summary.Total),
			fmt.Sprintf("Successful:   %d", len(summary.Successful)),
			fmt.Sprintf("Failed:       %d", len(summary.Failed)),
			fmt.Sprintf("Skipped:      %d", len(summary.Skipped)),
			fmt.Sprintf("Success rate: %.1f%%", summary.SuccessRate()*100),
			"Report:       " + path,
		}
		fmt.Fprintln(out, report.Card("Build complete", lines, len(summary.Failed) == 0, report.ColorEnabled(out, noColor)))

		if len(summary.Failed) > 0 {
			return &ExitError{Code: 1, Err: fmt.Errorf("%d of %d builds failed: %s",
				len(summary.Failed), summary.Total, strings.Join(summary.Failed, ", "))}
		}
		return nil
	},
}

func printBuildResults(w io.Writer, s *build.Summary) {
	for _, r := range s.Results {
		switch r.Status {
		case build.StatusSuccess:
			fmt.Fprintf(w, "  [ OK ] %s (%s) %.1fs\n", r.Repo, r.Type, r.Duration.Seconds())
		case build.StatusSkipped:
			fmt.Fprintf(w, "  [SKIP] %s (%s): %s\n", r.Repo, r.Type, r.Reason)
		default:
			fmt.Fprintf(w, "  [FAIL] %s (%s): %s\n", r.Repo, r.Type, r.Reason)
		}
	}
}
