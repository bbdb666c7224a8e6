package build

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/orgbuild-labs/orgbuild/internal/pool"
)

// Summary aggregates a BuildAll run. Results are in input order.
type Summary struct {
	Total      int
	Successful []string
	Failed     []string
	Skipped    []string
	Results    []Result
	Started    time.Time
	Duration   time.Duration
}

// SuccessRate is the share of successful builds in [0, 1].
func (s *Summary) SuccessRate() float64 {
	if s == nil || s.Total == 0 {
		return 0
	}
	return float64(len(s.Successful)) / float64(s.Total)
}

// Result returns the result for repo, if present.
func (s *Summary) Result(repo string) (Result, bool) {
	for _, r := range s.Results {
		if r.Repo == repo {
			return r, true
		}
	}
	return Result{}, false
}

// BuildAll builds every directory, in parallel when Workers > 1.
func (b *Builder) BuildAll(ctx context.Context, dirs []string) *Summary {
	s := &Summary{Total: len(dirs), Started: time.Now()}
	if b.Options.Workers > 1 && len(dirs) > 1 {
		b.log().Info("using parallel build", zap.Int("workers", b.Options.Workers))
	} else {
		b.log().Info("using sequential build")
	}

	s.Results = pool.Run(ctx, dirs, b.Options.Workers,
		func(ctx context.Context, i int, dir string) Result {
			b.log().Info("starting build",
				zap.Int("index", i+1), zap.Int("total", len(dirs)), zap.String("repo", filepath.Base(dir)))
			return b.BuildRepo(ctx, dir)
		},
		func(dir string, err error) Result {
			return Result{
				Repo:   filepath.Base(dir),
				Path:   dir,
				Status: StatusFailed,
				Reason: err.Error(),
			}
		})

	for _, r := range s.Results {
		switch r.Status {
		case StatusSuccess:
			s.Successful = append(s.Successful, r.Repo)
		case StatusSkipped:
			s.Skipped = append(s.Skipped, r.Repo)
		default:
			s.Failed = append(s.Failed, r.Repo)
		}
	}
	s.Duration = time.Since(s.Started)
	return s
}
