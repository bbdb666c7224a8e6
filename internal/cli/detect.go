package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orgbuild-labs/orgbuild/internal/config"
	"github.com/orgbuild-labs/orgbuild/internal/detect"
	"github.com/orgbuild-labs/orgbuild/internal/recipe"
	"github.com/orgbuild-labs/orgbuild/internal/workspace"
)

var detectChecks bool

func init() {
	detectCmd.Flags().BoolVar(&detectChecks, "checks", false, "Include lint and test stages in the plan")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect [dir...]",
	Short: "Show each project's detected type and build plan",
	Long: `Print the project type and the commands build would run, without running
anything. With no arguments every directory in the workspace is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		f, err := loadFleet(s)
		if err != nil {
			return err
		}

		dirs := args
		if len(dirs) == 0 {
			repos, _, err := workspace.Discover(workspace.ResolveBase(s.BaseDir), workspace.Options{})
			if err != nil {
				return fmt.Errorf("reading workspace: %w", err)
			}
			for _, r := range repos {
				dirs = append(dirs, r.Path)
			}
		}

		out := cmd.OutOrStdout()
		for _, dir := range dirs {
			name := filepath.Base(dir)
			probe, err := detect.NewProbe(dir)
			if err != nil {
				fmt.Fprintf(out, "%s: %s (%v)\n", name, detect.Error, err)
				continue
			}
			t := detect.Classify(probe)
			rec := recipe.For(t)
			if spec := f.Override(name); spec != nil {
				if forced, ok := detect.Parse(spec.Type); ok {
					t = forced
					rec = recipe.For(t)
				}
				if len(spec.Commands) > 0 {
					rec = recipe.Custom(t, spec.Commands)
				}
			}

			if rec.Skip {
				fmt.Fprintf(out, "%s: %s (skipped: %s)\n", name, t, rec.SkipReason)
				continue
			}
			fmt.Fprintf(out, "%s: %s\n", name, t)
			plan := recipe.Plan(rec, probe, recipe.Options{Checks: detectChecks})
			for _, c := range recipe.Commands(plan) {
				fmt.Fprintf(out, "    %s\n", c)
			}
			if len(rec.RequiredFiles) > 0 {
				fmt.Fprintf(out, "    requires: %s\n", strings.Join(rec.RequiredFiles, ", "))
			}
		}
		return nil
	},
}
