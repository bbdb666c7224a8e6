package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orgbuild-labs/orgbuild/internal/branding"
	"github.com/orgbuild-labs/orgbuild/internal/config"
	"github.com/orgbuild-labs/orgbuild/internal/doctor"
	"github.com/orgbuild-labs/orgbuild/internal/workspace"
)

var doctorTools []string

func init() {
	doctorCmd.Flags().StringSliceVar(&doctorTools, "tool", nil, "Only check these tools (comma-separated)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the toolchains orgbuild depends on",
	Long: `Run each toolchain's version command and compare against the minimum
supported versions. Also checks configuration, the GitHub token and the
workspace directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		tools, err := selectTools(doctorTools)
		if err != nil {
			return err
		}

		results := doctor.Check(ctxOrBackground(cmd.Context()), newRunner(), tools)
		doctor.Print(out, results)
		runSettingsCheck(out, config.Current())

		for _, name := range doctor.Missing(results) {
			if name == "git" {
				return fmt.Errorf("git is required but not found in PATH")
			}
		}
		return nil
	},
}

func selectTools(names []string) ([]doctor.Tool, error) {
	if len(names) == 0 {
		return doctor.DefaultTools, nil
	}
	var tools []doctor.Tool
	for _, n := range names {
		found := false
		for _, t := range doctor.DefaultTools {
			if t.Name == n {
				tools = append(tools, t)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown tool %q (known: %s)", n, strings.Join(toolNames(), ", "))
		}
	}
	return tools, nil
}

func toolNames() []string {
	names := make([]string, 0, len(doctor.DefaultTools))
	for _, t := range doctor.DefaultTools {
		names = append(names, t.Name)
	}
	return names
}

func runSettingsCheck(w io.Writer, s config.Settings) {
	fmt.Fprintln(w, "Settings check:")
	if _, err := os.Stat(config.FilePath()); err == nil {
		fmt.Fprintf(w, "  [ OK ] %s\n", config.FilePath())
	} else {
		fmt.Fprintf(w, "  [INFO] %s not found, using defaults\n", config.FilePath())
	}
	if s.Token != "" {
		fmt.Fprintln(w, "  [ OK ] GitHub token configured")
	} else {
		fmt.Fprintln(w, "  [WARN] No GitHub token: API calls are rate limited and private repositories are hidden")
		fmt.Fprintln(w, "         Set GITHUB_TOKEN or run '"+branding.CLIName()+" config set github_token <token>'")
	}
	if workspace.Exists(s.BaseDir) {
		fmt.Fprintf(w, "  [ OK ] workspace %s exists\n", s.BaseDir)
	} else {
		fmt.Fprintf(w, "  [MISS] workspace %s does not exist (run '%s clone')\n", s.BaseDir, branding.CLIName())
	}
	if s.FleetFile != "" {
		if _, err := os.Stat(s.FleetFile); err != nil {
			fmt.Fprintf(w, "  [FAIL] fleet manifest %s: %v\n", s.FleetFile, err)
		} else {
			fmt.Fprintf(w, "  [ OK ] fleet manifest %s\n", s.FleetFile)
		}
	}
}

func ctxOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
