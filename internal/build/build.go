package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/orgbuild-labs/orgbuild/internal/detect"
	"github.com/orgbuild-labs/orgbuild/internal/fleet"
	"github.com/orgbuild-labs/orgbuild/internal/recipe"
	"github.com/orgbuild-labs/orgbuild/internal/runner"
)

// Status is the outcome of building one repository.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Options tunes a Builder.
type Options struct {
	Workers int
	// Checks runs the lint and test stages of each recipe.
	Checks bool
	// Clean removes artifact and dependency directories before building.
	Clean bool
	// VerifyArtifacts requires a non-empty artifact directory for success.
	VerifyArtifacts bool
	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration
}

// CommandResult records one executed command.
type CommandResult struct {
	Step     string
	Command  string
	ExitCode int
	Duration time.Duration
	Stdout   string
	Stderr   string
	Err      string
}

// OK reports whether the command exited 0 without a runner error.
func (c CommandResult) OK() bool {
	return c.Err == "" && c.ExitCode == 0
}

// Result is the outcome for one repository.
type Result struct {
	Repo     string
	Path     string
	Type     detect.Type
	Status   Status
	Reason   string
	Errors   []string
	Commands []CommandResult
	Duration time.Duration
}

// Builder builds repositories with a Runner.
type Builder struct {
	Runner  runner.Runner
	Logger  *zap.Logger
	Fleet   *fleet.Fleet
	Options Options
}

func (b *Builder) log() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// BuildRepo detects dir's project type and runs its recipe. Failures are
// reported in the Result, never returned.
func (b *Builder) BuildRepo(ctx context.Context, dir string) (res Result) {
	start := time.Now()
	name := filepath.Base(dir)
	res = Result{Repo: name, Path: dir}
	log := b.log().With(zap.String("repo", name))
	defer func() { res.Duration = time.Since(start) }()

	probe, err := detect.NewProbe(dir)
	if err != nil {
		res.Type = detect.Error
		res.Status = StatusSkipped
		res.Reason = "cannot read directory"
		res.Errors = append(res.Errors, err.Error())
		return res
	}

	spec := b.Fleet.Override(name)
	res.Type = detect.Classify(probe)
	if spec != nil && spec.Type != "" {
		if t, ok := detect.Parse(spec.Type); ok {
			res.Type = t
		}
	}
	log.Debug("detected project type", zap.String("type", string(res.Type)))

	rec := recipe.For(res.Type)
	if spec != nil && len(spec.Commands) > 0 {
		rec = recipe.Custom(res.Type, spec.Commands)
	}
	if rec.Skip {
		res.Status = StatusSkipped
		res.Reason = rec.SkipReason
		return res
	}

	for _, f := range rec.RequiredFiles {
		if !probe.Has(f) {
			res.Status = StatusSkipped
			res.Reason = "prerequisites not met"
			res.Errors = append(res.Errors, "missing required file "+f)
			return res
		}
	}

	if b.Options.Clean {
		if err := clean(dir, rec); err != nil {
			res.Status = StatusFailed
			res.Reason = "failed to set up build environment"
			res.Errors = append(res.Errors, err.Error())
			return res
		}
	}

	installed := false
	for _, step := range recipe.Plan(rec, probe, recipe.Options{Checks: b.Options.Checks}) {
		ok := b.runStep(ctx, dir, step, &res)
		if ok && step.Install {
			installed = true
		}
		if !ok && !step.Optional {
			res.Status = StatusFailed
			res.Reason = fmt.Sprintf("%s failed", step.Name)
			log.Warn("required step failed", zap.String("step", step.Name))
			return res
		}
		if ctx.Err() != nil {
			res.Status = StatusFailed
			res.Reason = "cancelled"
			res.Errors = append(res.Errors, ctx.Err().Error())
			return res
		}
	}

	if rec.NeedInstall && !installed {
		res.Status = StatusFailed
		res.Reason = "no dependency installation succeeded"
		return res
	}

	if b.Options.VerifyArtifacts && rec.ArtifactDir != "" {
		artifacts := filepath.Join(dir, rec.ArtifactDir)
		if !nonEmptyDir(artifacts) {
			res.Status = StatusFailed
			res.Reason = "no build artifacts"
			res.Errors = append(res.Errors, fmt.Sprintf("build directory %s is empty or doesn't exist", artifacts))
			return res
		}
	}

	res.Status = StatusSuccess
	return res
}

// runStep tries the step's alternatives in order and reports whether one
// succeeded. Every attempt is appended to res.Commands.
func (b *Builder) runStep(ctx context.Context, dir string, step recipe.Step, res *Result) bool {
	log := b.log().With(zap.String("repo", res.Repo), zap.String("step", step.Name))
	for _, alt := range step.Alternatives {
		cmd := recipe.Command(alt)
		cmd.Dir = dir
		cmd.Timeout = b.Options.Timeout

		log.Info("running", zap.String("command", cmd.String()))
		out, err := b.Runner.Run(ctx, cmd)
		cr := CommandResult{Step: step.Name, Command: cmd.String()}
		if out != nil {
			cr.ExitCode = out.ExitCode
			cr.Duration = out.Duration
			cr.Stdout = out.Stdout
			cr.Stderr = out.Stderr
		}
		if err != nil {
			cr.Err = err.Error()
			if out == nil {
				cr.ExitCode = -1
			}
		}
		res.Commands = append(res.Commands, cr)

		if cr.OK() {
			log.Debug("command succeeded", zap.Duration("duration", cr.Duration),
				zap.String("output", runner.Preview(cr.Stdout, 200)))
			return true
		}

		msg := fmt.Sprintf("command failed: %s", cr.Command)
		switch {
		case cr.Err != "":
			msg += ": " + cr.Err
		case cr.Stderr != "":
			msg += ": " + runner.Preview(cr.Stderr, 200)
		default:
			msg += fmt.Sprintf(": exit status %d", cr.ExitCode)
		}
		if !step.Optional {
			res.Errors = append(res.Errors, msg)
		}
		log.Debug("command failed", zap.Int("exit_code", cr.ExitCode), zap.String("error", msg))
		if ctx.Err() != nil {
			return false
		}
	}
	return false
}

func clean(dir string, rec recipe.Recipe) error {
	var targets []string
	if rec.ArtifactDir != "" {
		targets = append(targets, rec.ArtifactDir)
	}
	targets = append(targets, rec.CleanDirs...)
	for _, t := range targets {
		if err := os.RemoveAll(filepath.Join(dir, t)); err != nil {
			return fmt.Errorf("cleaning %s: %w", t, err)
		}
	}
	return nil
}

func nonEmptyDir(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}
