package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/orgbuild-labs/orgbuild/internal/config"
	"github.com/orgbuild-labs/orgbuild/internal/fleet"
	"github.com/orgbuild-labs/orgbuild/internal/github"
)

var (
	discoverRefresh bool
	discoverJSON    bool
	discoverLimit   int
)

func init() {
	discoverCmd.Flags().BoolVar(&discoverRefresh, "refresh", false, "Ignore the cached repository list")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "Print repositories as JSON")
	discoverCmd.Flags().IntVar(&discoverLimit, "limit", 100, "Maximum repositories to ask the gh CLI for")
	rootCmd.AddCommand(discoverCmd)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List the organization's repositories",
	Long: `List repositories from the fleet manifest, the GitHub API (cached for an
hour), the gh CLI, and finally a built-in list of common names.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := config.Current()
		f, err := loadFleet(s)
		if err != nil {
			return err
		}
		org := orgFor(s, f)
		repos := discoverRepos(cmd.Context(), s, f, org, discoverRefresh, discoverLimit)

		out := cmd.OutOrStdout()
		if discoverJSON {
			data, err := json.MarshalIndent(repos, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling repositories: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
		printRepos(out, org, repos)
		return nil
	},
}

func newDiscoverer(s config.Settings, f *fleet.Fleet, refresh bool, limit int) *github.Discoverer {
	return &github.Discoverer{
		API: github.New(
			github.WithBaseURL(s.GitHubAPI),
			github.WithToken(s.Token),
			github.WithLogger(logger),
		),
		GH:       &github.GHCLI{Runner: newRunner()},
		Fleet:    f,
		CacheDir: config.Dir(),
		Refresh:  refresh,
		GHLimit:  limit,
		Logger:   logger,
	}
}

func discoverRepos(ctx context.Context, s config.Settings, f *fleet.Fleet, org string, refresh bool, limit int) []github.Repo {
	if ctx == nil {
		ctx = context.Background()
	}
	return newDiscoverer(s, f, refresh, limit).Discover(ctx, org)
}

func printRepos(w io.Writer, org string, repos []github.Repo) {
	fmt.Fprintf(w, "%d repositories for %s:\n", len(repos), org)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range repos {
		desc := r.Description
		if r.Archived {
			desc = "[archived] " + desc
		}
		fmt.Fprintf(tw, "  %2d.\t%s\t%s\t%s\n", i+1, r.Name, r.Source, desc)
	}
	tw.Flush()
}
