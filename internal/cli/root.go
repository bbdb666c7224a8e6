package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/orgbuild-labs/orgbuild/internal/branding"
	"github.com/orgbuild-labs/orgbuild/internal/config"
	"github.com/orgbuild-labs/orgbuild/internal/fleet"
	"github.com/orgbuild-labs/orgbuild/internal/logging"
	"github.com/orgbuild-labs/orgbuild/internal/runner"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose bool
	noColor bool

	logger   = zap.NewNop()
	closeLog = func() {}
)

// persistentBindings maps root flags to config keys.
var persistentBindings = map[string]string{
	"dir":      config.KeyBaseDir,
	"org":      config.KeyOrg,
	"token":    config.KeyToken,
	"log-file": config.KeyLogFile,
	"fleet":    config.KeyFleetFile,
}

// localBindings maps per-command flags to config keys when a command has them.
var localBindings = map[string]string{
	"workers": config.KeyWorkers,
	"timeout": config.KeyCommandTimeout,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("dir", "", "Workspace directory holding the cloned repositories (default "+branding.DefaultBaseDir()+")")
	pf.String("org", "", "GitHub organization (default "+branding.DefaultOrg()+")")
	pf.String("token", "", "GitHub token (default $GITHUB_TOKEN)")
	pf.String("log-file", "", "Also write JSON logs to this file")
	pf.String("fleet", "", "Fleet manifest with per-repository overrides")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	pf.BoolVar(&noColor, "no-color", false, "Disable coloured output")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` discovers the repositories of a GitHub organization, clones or
updates them into a local workspace, detects each project's type and runs the
matching toolchain (npm, pip, maven, gradle, cargo, go), then writes a report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		if err := bindFlags(cmd); err != nil {
			return err
		}

		s := config.Current()
		l, closer, err := logging.New(logging.Options{
			Level:   s.LogLevel,
			Verbose: verbose,
			File:    s.LogFile,
			Console: cmd.ErrOrStderr(),
		})
		if err != nil {
			return fmt.Errorf("setting up logging: %w", err)
		}
		logger, closeLog = l, closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
}

func bindFlags(cmd *cobra.Command) error {
	for flag, key := range persistentBindings {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
	}
	for flag, key := range localBindings {
		if f := cmd.LocalFlags().Lookup(flag); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", flag, err)
			}
		}
	}
	return nil
}

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps an Execute error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}

// newRunner returns the process runner, echoing child output in verbose mode.
func newRunner() runner.Runner {
	r := &runner.ExecRunner{}
	if verbose {
		r.Stdout = os.Stderr
		r.Stderr = os.Stderr
	}
	return r
}

// loadFleet reads the configured fleet manifest, or returns nil when none
// is configured.
func loadFleet(s config.Settings) (*fleet.Fleet, error) {
	if s.FleetFile == "" {
		return nil, nil
	}
	f, err := fleet.Load(s.FleetFile)
	if err != nil {
		return nil, fmt.Errorf("loading fleet manifest: %w", err)
	}
	logger.Debug("loaded fleet manifest", zap.String("path", s.FleetFile), zap.Int("repos", len(f.Repos)))
	return f, nil
}

// orgFor prefers the fleet's org unless another one was configured.
func orgFor(s config.Settings, f *fleet.Fleet) string {
	if f != nil && f.Org != "" && s.Org == branding.DefaultOrg() {
		return f.Org
	}
	return s.Org
}
