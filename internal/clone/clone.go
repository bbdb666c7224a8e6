package clone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/orgbuild-labs/orgbuild/internal/fleet"
	"github.com/orgbuild-labs/orgbuild/internal/github"
	"github.com/orgbuild-labs/orgbuild/internal/pool"
	"github.com/orgbuild-labs/orgbuild/internal/runner"
)

// Status is the outcome of cloning one repository.
type Status string

const (
	StatusCloned  Status = "cloned"
	StatusUpdated Status = "updated"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// tmpSuffix is appended to the target dir while a clone is in flight.
const tmpSuffix = ".tmp"

// Options tunes a Cloner.
type Options struct {
	Workers      int
	CloneTimeout time.Duration
	PullTimeout  time.Duration
	ShallowDepth int // 0 clones full history
}

// Result is the outcome for one repository.
type Result struct {
	Repo     string
	Path     string
	Status   Status
	URL      string   // the URL that worked
	Tried    []string // every URL attempted
	Reason   string
	Errors   []string
	Duration time.Duration
}

// OK reports whether the repository is present and current.
func (r Result) OK() bool {
	return r.Status == StatusCloned || r.Status == StatusUpdated
}

// Summary aggregates a CloneAll run.
type Summary struct {
	Org       string
	Total     int
	Succeeded []string
	Failed    []string
	Skipped   []string
	Results   []Result
	Started   time.Time
	Duration  time.Duration
}

// Cloner clones repositories with git through a Runner.
type Cloner struct {
	Runner  runner.Runner
	Logger  *zap.Logger
	Fleet   *fleet.Fleet
	Options Options
}

func (c *Cloner) log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// CloneRepo makes base/<name> an up-to-date checkout of repo. An existing
// directory is pulled; if the pull fails it is removed and cloned fresh.
// Each candidate URL is tried in turn until one succeeds.
func (c *Cloner) CloneRepo(ctx context.Context, base, org string, repo github.Repo) Result {
	start := time.Now()
	path := filepath.Join(base, repo.Name)
	res := Result{Repo: repo.Name, Path: path}
	log := c.log().With(zap.String("repo", repo.Name))

	spec := c.Fleet.Override(repo.Name)
	if spec != nil && spec.Skip {
		res.Status = StatusSkipped
		res.Reason = "skipped by fleet manifest"
		return res
	}

	if _, err := os.Stat(path); err == nil {
		log.Debug("repository exists, pulling")
		out, err := c.Runner.Run(ctx, runner.Command{
			Name:    "git",
			Args:    []string{"pull"},
			Dir:     path,
			Timeout: c.Options.PullTimeout,
		})
		if err == nil && out.Success() {
			res.Status = StatusUpdated
			res.Duration = time.Since(start)
			return res
		}
		res.Errors = append(res.Errors, "git pull: "+failureText(out, err))
		log.Warn("pull failed, trying fresh clone", zap.String("error", failureText(out, err)))
		if err := os.RemoveAll(path); err != nil {
			res.Status = StatusFailed
			res.Reason = fmt.Sprintf("removing stale checkout: %v", err)
			res.Duration = time.Since(start)
			return res
		}
	}

	urls := CloneURLs(org, repo)
	if spec != nil && spec.URL != "" {
		urls = prepend(spec.URL, urls)
	}

	for i, u := range urls {
		res.Tried = append(res.Tried, u)
		log.Debug("clone attempt", zap.Int("attempt", i+1), zap.String("url", u))
		if err := c.cloneInto(ctx, u, path); err != nil {
			res.Errors = append(res.Errors, u+": "+err.Error())
			continue
		}
		res.Status = StatusCloned
		res.URL = u
		res.Duration = time.Since(start)
		return res
	}

	res.Status = StatusFailed
	res.Reason = "all clone attempts failed"
	res.Duration = time.Since(start)
	return res
}

// cloneInto clones url into path via a temporary sibling directory so a
// failed attempt never leaves a partial checkout behind.
func (c *Cloner) cloneInto(ctx context.Context, url, path string) error {
	tmp := path + tmpSuffix
	_ = os.RemoveAll(tmp)

	args := []string{"clone"}
	if c.Options.ShallowDepth > 0 {
		args = append(args, "--depth", strconv.Itoa(c.Options.ShallowDepth))
	}
	args = append(args, url, tmp)

	out, err := c.Runner.Run(ctx, runner.Command{
		Name:    "git",
		Args:    args,
		Timeout: c.Options.CloneTimeout,
		Env:     []string{"GIT_TERMINAL_PROMPT=0"},
	})
	if err != nil || !out.Success() {
		_ = os.RemoveAll(tmp)
		return fmt.Errorf("%s", failureText(out, err))
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.RemoveAll(tmp)
		return fmt.Errorf("finalizing clone: %w", err)
	}
	return nil
}

// CloneAll clones repos into base, in parallel when Workers > 1.
// The base directory is created if needed.
func (c *Cloner) CloneAll(ctx context.Context, base, org string, repos []github.Repo) (*Summary, error) {
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("creating workspace %s: %w", base, err)
	}

	s := &Summary{Org: org, Total: len(repos), Started: time.Now()}
	s.Results = pool.Run(ctx, repos, c.Options.Workers,
		func(ctx context.Context, i int, repo github.Repo) Result {
			c.log().Info("processing repository",
				zap.Int("index", i+1), zap.Int("total", len(repos)), zap.String("repo", repo.Name))
			return c.CloneRepo(ctx, base, org, repo)
		},
		func(repo github.Repo, err error) Result {
			return Result{
				Repo:   repo.Name,
				Path:   filepath.Join(base, repo.Name),
				Status: StatusFailed,
				Reason: err.Error(),
			}
		})

	for _, r := range s.Results {
		switch {
		case r.OK():
			s.Succeeded = append(s.Succeeded, r.Repo)
		case r.Status == StatusSkipped:
			s.Skipped = append(s.Skipped, r.Repo)
		default:
			s.Failed = append(s.Failed, r.Repo)
			c.log().Warn("repository failed", zap.String("repo", r.Repo), zap.String("reason", r.Reason))
		}
	}
	s.Duration = time.Since(s.Started)
	return s, nil
}

func failureText(out *runner.Output, err error) string {
	switch {
	case err != nil:
		return err.Error()
	case out == nil:
		return "no output"
	case out.Stderr != "":
		return runner.Preview(out.Stderr, 200)
	default:
		return fmt.Sprintf("exit status %d", out.ExitCode)
	}
}

func prepend(u string, urls []string) []string {
	out := []string{u}
	for _, x := range urls {
		if x != u {
			out = append(out, x)
		}
	}
	return out
}
