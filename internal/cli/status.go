package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/orgbuild-labs/orgbuild/internal/branding"
	"github.com/orgbuild-labs/orgbuild/internal/config"
	"github.com/orgbuild-labs/orgbuild/internal/doctor"
	"github.com/orgbuild-labs/orgbuild/internal/report"
	"github.com/orgbuild-labs/orgbuild/internal/workspace"
)

// statusTools are the tools the situation summary reports on.
var statusTools = []string{"git", "python3", "npm", "node"}

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Describe the workspace and suggest next steps",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s := config.Current()

		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		fmt.Fprintf(out, "Working directory: %s\n", cwd)
		fmt.Fprintf(out, "Organization:      %s\n", s.Org)

		fmt.Fprintln(out, "Workspace:")
		hasWorkspace := workspace.Exists(s.BaseDir)
		var repos []workspace.Repo
		if hasWorkspace {
			repos, _, err = workspace.Discover(s.BaseDir, workspace.Options{})
			if err != nil {
				fmt.Fprintf(out, "  [FAIL] %v\n", err)
			} else {
				gitRepos := 0
				for _, r := range repos {
					if workspace.IsGitRepo(r.Path) {
						gitRepos++
					}
				}
				fmt.Fprintf(out, "  [ OK ] %s: %d directories, %d git checkouts\n", s.BaseDir, len(repos), gitRepos)
				for i, r := range repos {
					fmt.Fprintf(out, "         %2d. %s\n", i+1, r.Name)
				}
			}
			for _, kind := range []string{"clone", "build"} {
				for _, f := range []report.Format{report.Text, report.Markdown} {
					p := report.Path(s.BaseDir, kind, f)
					if info, err := os.Stat(p); err == nil {
						fmt.Fprintf(out, "  [ OK ] %s (%s)\n", filepath.Base(p), info.ModTime().Format("2006-01-02 15:04"))
					}
				}
			}
		} else {
			fmt.Fprintf(out, "  [MISS] %s does not exist\n", s.BaseDir)
		}

		tools, err := selectTools(statusTools)
		if err != nil {
			return err
		}
		results := doctor.Check(ctxOrBackground(cmd.Context()), newRunner(), tools)
		doctor.Print(out, results)

		fmt.Fprintln(out, "Next steps:")
		step := 1
		if !hasWorkspace || len(repos) == 0 {
			fmt.Fprintf(out, "  %d. Clone the organization: %s clone\n", step, branding.CLIName())
		} else {
			fmt.Fprintf(out, "  %d. Repositories are present, build them: %s build\n", step, branding.CLIName())
		}
		step++
		if s.Token == "" {
			fmt.Fprintf(out, "  %d. Set GITHUB_TOKEN to reach private repositories\n", step)
			step++
		}
		if missing := doctor.Missing(results); len(missing) > 0 {
			fmt.Fprintf(out, "  %d. Install missing tools: %v\n", step, missing)
		}
		return nil
	},
}
