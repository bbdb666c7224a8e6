package github

import (
	"os"
	"testing"
	"time"
)

func TestLoadCache_Missing(t *testing.T) {
	cache, err := LoadCache(t.TempDir(), "acme")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache != nil {
		t.Error("expected nil cache for missing file")
	}
}

func TestSaveAndLoadCache(t *testing.T) {
	tmp := t.TempDir()

	original := &RepoCache{
		Org:       "acme",
		Repos:     []Repo{{Name: "website", CloneURL: "https://github.com/acme/website.git"}},
		FetchedAt: time.Now().Truncate(time.Second),
	}
	if err := SaveCache(tmp, original); err != nil {
		t.Fatalf("SaveCache failed: %v", err)
	}

	loaded, err := LoadCache(tmp, "acme")
	if err != nil {
		t.Fatalf("LoadCache failed: %v", err)
	}
	if len(loaded.Repos) != 1 || loaded.Repos[0].Name != "website" {
		t.Errorf("Repos = %+v", loaded.Repos)
	}
	if !loaded.FetchedAt.Equal(original.FetchedAt) {
		t.Errorf("FetchedAt = %v, want %v", loaded.FetchedAt, original.FetchedAt)
	}

	other, err := LoadCache(tmp, "other")
	if err != nil || other != nil {
		t.Errorf("cache for another org should be absent, got %+v, %v", other, err)
	}
}

func TestLoadCache_Corrupted(t *testing.T) {
	tmp := t.TempDir()
	os.WriteFile(cachePath(tmp, "acme"), []byte("not valid json{{{"), 0644)

	if _, err := LoadCache(tmp, "acme"); err == nil {
		t.Error("expected error for corrupted cache")
	}
}

func TestIsCacheStale(t *testing.T) {
	tests := []struct {
		name     string
		cache    *RepoCache
		expected bool
	}{
		{"nil cache is stale", nil, true},
		{"fresh cache", &RepoCache{FetchedAt: time.Now()}, false},
		{"stale cache", &RepoCache{FetchedAt: time.Now().Add(-2 * time.Hour)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCacheStale(tt.cache, DefaultCacheMaxAge); got != tt.expected {
				t.Errorf("IsCacheStale = %v, want %v", got, tt.expected)
			}
		})
	}
}
