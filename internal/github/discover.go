package github

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/orgbuild-labs/orgbuild/internal/fleet"
)

// Repository sources, in the order Discover consults them.
const (
	SourceFleet   = "fleet"
	SourceCache   = "cache"
	SourceAPI     = "api"
	SourceGH      = "gh"
	SourceBuiltin = "builtin"
)

// KnownRepos is the fallback list used when no other source answers.
var KnownRepos = []string{
	"asligibi_website-_2", "website", "portfolio", "blog", "app", "dashboard",
	"admin", "api", "backend", "frontend", "mobile", "docs", "landing", "shop",
	"ecommerce", "cms", "crm", "erp", "hr", "finance", "inventory", "booking",
	"reservation", "chat", "messaging", "social", "network", "platform",
	"service", "microservice", "auth", "authentication", "authorization",
	"payment", "billing", "subscription", "notification", "email", "sms",
	"analytics", "monitoring", "logging", "config", "utils", "tools", "scripts",
	"automation", "ci-cd", "devops", "docker", "kubernetes", "terraform",
	"ansible",
}

// Lister is the API surface Discoverer needs.
type Lister interface {
	ListOrgRepos(ctx context.Context, org string) ([]Repo, error)
}

// Discoverer assembles the repository list for an organization.
type Discoverer struct {
	API      Lister
	GH       *GHCLI
	Fleet    *fleet.Fleet
	CacheDir string // empty disables the cache
	MaxAge   time.Duration
	Refresh  bool // bypass a fresh cache
	GHLimit  int
	Logger   *zap.Logger
}

// Discover returns the organization's repositories. Fleet entries come
// first. The API (or a fresh cache of it) is next; when it fails or is
// empty the gh CLI is tried. The built-in list is used only when nothing
// else produced a repository. Names excluded by the fleet are dropped.
func (d *Discoverer) Discover(ctx context.Context, org string) []Repo {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := newMerger(d.Fleet)

	for _, spec := range d.fleetRepos() {
		m.add(Repo{Name: spec.Name, CloneURL: spec.URL, Source: SourceFleet})
	}

	remote := d.fromAPI(ctx, org, log)
	if len(remote) == 0 && d.GH != nil {
		limit := d.GHLimit
		if limit <= 0 {
			limit = 100
		}
		repos, err := d.GH.List(ctx, org, limit)
		if err != nil {
			log.Warn("gh repository listing failed", zap.String("org", org), zap.Error(err))
		}
		remote = repos
	}
	m.add(remote...)

	if m.len() == 0 {
		log.Info("no repositories discovered, using built-in list", zap.Int("count", len(KnownRepos)))
		for _, name := range KnownRepos {
			m.add(Repo{Name: name, Source: SourceBuiltin})
		}
	}
	return m.repos
}

func (d *Discoverer) fleetRepos() []fleet.RepoSpec {
	if d.Fleet == nil {
		return nil
	}
	return d.Fleet.Repos
}

func (d *Discoverer) fromAPI(ctx context.Context, org string, log *zap.Logger) []Repo {
	if d.CacheDir != "" && !d.Refresh {
		cache, err := LoadCache(d.CacheDir, org)
		if err != nil {
			log.Warn("ignoring unreadable repository cache", zap.Error(err))
		}
		maxAge := d.MaxAge
		if maxAge == 0 {
			maxAge = DefaultCacheMaxAge
		}
		if !IsCacheStale(cache, maxAge) && len(cache.Repos) > 0 {
			log.Debug("using cached repository list", zap.Time("fetched_at", cache.FetchedAt))
			repos := make([]Repo, len(cache.Repos))
			copy(repos, cache.Repos)
			for i := range repos {
				repos[i].Source = SourceCache
			}
			return repos
		}
	}

	if d.API == nil {
		return nil
	}
	repos, err := d.API.ListOrgRepos(ctx, org)
	if err != nil {
		log.Warn("GitHub API listing failed", zap.String("org", org), zap.Error(err))
		return nil
	}
	log.Info("found repositories via GitHub API", zap.Int("count", len(repos)))

	if d.CacheDir != "" && len(repos) > 0 {
		err := SaveCache(d.CacheDir, &RepoCache{Org: org, Repos: repos, FetchedAt: time.Now()})
		if err != nil {
			log.Warn("could not write repository cache", zap.Error(err))
		}
	}
	return repos
}

// merger deduplicates by name, keeping the first occurrence but filling
// in URLs a later source knows about.
type merger struct {
	fleet *fleet.Fleet
	index map[string]int
	repos []Repo
}

func newMerger(f *fleet.Fleet) *merger {
	return &merger{fleet: f, index: make(map[string]int)}
}

func (m *merger) add(repos ...Repo) {
	for _, r := range repos {
		if r.Name == "" || m.fleet.Excluded(r.Name) {
			continue
		}
		if i, ok := m.index[r.Name]; ok {
			m.repos[i] = fill(m.repos[i], r)
			continue
		}
		m.index[r.Name] = len(m.repos)
		m.repos = append(m.repos, r)
	}
}

func (m *merger) len() int { return len(m.repos) }

func fill(dst, src Repo) Repo {
	if dst.CloneURL == "" {
		dst.CloneURL = src.CloneURL
	}
	if dst.SSHURL == "" {
		dst.SSHURL = src.SSHURL
	}
	if dst.GitURL == "" {
		dst.GitURL = src.GitURL
	}
	if dst.HTMLURL == "" {
		dst.HTMLURL = src.HTMLURL
	}
	if dst.Description == "" {
		dst.Description = src.Description
	}
	if dst.Language == "" {
		dst.Language = src.Language
	}
	return dst
}
