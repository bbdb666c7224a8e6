package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCurrent_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")

	Load()
	s := Current()

	if s.Org != "tozsolutions" {
		t.Errorf("Org = %q, want %q", s.Org, "tozsolutions")
	}
	if s.BaseDir != "./tozsolutions_repos" {
		t.Errorf("BaseDir = %q, want %q", s.BaseDir, "./tozsolutions_repos")
	}
	if s.Workers != 4 {
		t.Errorf("Workers = %d, want 4", s.Workers)
	}
	if s.CommandTimeout != 10*time.Minute {
		t.Errorf("CommandTimeout = %v, want 10m", s.CommandTimeout)
	}
	if s.PullTimeout != 5*time.Minute {
		t.Errorf("PullTimeout = %v, want 5m", s.PullTimeout)
	}
}

func TestCurrent_EnvOverrides(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ORGBUILD_ORG", "acme")
	t.Setenv("ORGBUILD_WORKERS", "8")
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	Load()
	s := Current()

	if s.Org != "acme" {
		t.Errorf("Org = %q, want %q", s.Org, "acme")
	}
	if s.Workers != 8 {
		t.Errorf("Workers = %d, want 8", s.Workers)
	}
	if s.Token != "ghp_test" {
		t.Errorf("Token = %q, want %q", s.Token, "ghp_test")
	}
}

func TestCurrent_WorkersFloor(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ORGBUILD_WORKERS", "0")

	Load()
	if got := Current().Workers; got != 1 {
		t.Errorf("Workers = %d, want 1", got)
	}
}

func TestSetAndGet(t *testing.T) {
	resetViper(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	Load()
	if err := Set(KeyOrg, "example-org"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, ".orgbuild", "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	viper.Reset()
	Load()
	if got := Get(KeyOrg); got != "example-org" {
		t.Errorf("Get(org) = %q, want %q", got, "example-org")
	}
}

func TestIsKnownKey(t *testing.T) {
	for _, k := range KnownKeys {
		if !IsKnownKey(k) {
			t.Errorf("IsKnownKey(%q) = false", k)
		}
	}
	if IsKnownKey("catalog_repo") {
		t.Error("catalog_repo should not be a known key")
	}
}
