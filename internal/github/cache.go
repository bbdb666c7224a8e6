package github

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultCacheMaxAge is how long a cached repository listing stays fresh.
const DefaultCacheMaxAge = time.Hour

// RepoCache holds the last successful API listing for an organization.
type RepoCache struct {
	Org       string    `json:"org"`
	Repos     []Repo    `json:"repos"`
	FetchedAt time.Time `json:"fetched_at"`
}

func cachePath(dir, org string) string {
	return filepath.Join(dir, "repos-"+org+".json")
}

// LoadCache reads the listing cached for org under dir.
// Returns nil, nil if there is no cache yet.
func LoadCache(dir, org string) (*RepoCache, error) {
	data, err := os.ReadFile(cachePath(dir, org))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading repository cache: %w", err)
	}

	var cache RepoCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, fmt.Errorf("parsing repository cache: %w", err)
	}
	return &cache, nil
}

// SaveCache writes cache under dir, creating dir if needed.
func SaveCache(dir string, cache *RepoCache) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling repository cache: %w", err)
	}

	if err := os.WriteFile(cachePath(dir, cache.Org), data, 0644); err != nil {
		return fmt.Errorf("writing repository cache: %w", err)
	}
	return nil
}

// IsCacheStale returns true if the cache is nil or older than maxAge.
func IsCacheStale(cache *RepoCache, maxAge time.Duration) bool {
	if cache == nil {
		return true
	}
	return time.Since(cache.FetchedAt) > maxAge
}
