//go:build integration

package integration_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// testEnv holds the isolated directories of one end-to-end run.
type testEnv struct {
	OriginDir    string // local git repositories standing in for the organization
	WorkspaceDir string // where orgbuild clones to
	HomeDir      string // HOME, so caches and config stay sandboxed
}

// setupTestEnv creates isolated temp directories and points HOME at one of
// them. Tests that need git are skipped when it isn't installed.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	env := &testEnv{
		OriginDir:    t.TempDir(),
		WorkspaceDir: filepath.Join(t.TempDir(), "workspace"),
		HomeDir:      t.TempDir(),
	}
	t.Setenv("HOME", env.HomeDir)
	return env
}

// makeOriginRepo creates a committed git repository under OriginDir with
// files and returns its path, usable as a clone URL.
func makeOriginRepo(t *testing.T, env *testEnv, name string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(env.OriginDir, name)
	for rel, content := range files {
		writeFile(t, filepath.Join(dir, rel), content)
	}
	git(t, dir, "init", "-q")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "-q", "-m", "initial")
	return dir
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=orgbuild", "GIT_AUTHOR_EMAIL=orgbuild@example.com",
		"GIT_COMMITTER_NAME=orgbuild", "GIT_COMMITTER_EMAIL=orgbuild@example.com")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v in %s: %v\n%s", args, dir, err, out)
	}
}

// writeFile creates a file with the given content, creating parent dirs.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the path does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
	}
}
