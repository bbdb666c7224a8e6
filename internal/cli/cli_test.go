package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/orgbuild-labs/orgbuild/internal/github"
)

// resetFlags restores every flag in the tree to its default so tests don't
// see each other's arguments.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")
	viper.Reset()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestVersionShort(t *testing.T) {
	buildVersion = "1.2.3"
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "1.2.3" {
		t.Errorf("output = %q", out)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "fleet.yaml")
	writeFile(t, good, "org: acme\nrepos:\n  - name: website\n    type: html\nexclude: [legacy]\n")
	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "repos:\n  - name: website\n    type: cobol\n")

	out, err := execute(t, "validate", good)
	if err != nil {
		t.Fatalf("valid manifest: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1 repositories, 1 excluded") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "validate", bad)
	if err == nil {
		t.Fatal("expected error for invalid manifest")
	}
	if !strings.Contains(out, "/repos/0/type") {
		t.Errorf("issue path missing from output:\n%s", out)
	}
}

func TestDetect(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "site", "index.html"), "<html/>")
	writeFile(t, filepath.Join(base, "svc", "pom.xml"), "<project/>")

	out, err := execute(t, "detect", "--dir", base)
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	for _, want := range []string{
		"site: html (skipped: no build required)",
		"svc: java-maven",
		"mvn clean compile",
		"mvn package (optional)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBuild_SkippedOnly(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "site", "index.html"), "<html/>")
	writeFile(t, filepath.Join(base, "box", "Dockerfile"), "FROM scratch")

	out, err := execute(t, "build", "--dir", base, "--format", "text", "--no-color")
	if err != nil {
		t.Fatalf("build: %v\n%s", err, out)
	}
	if !strings.Contains(out, "[SKIP] site (html): no build required") {
		t.Errorf("output:\n%s", out)
	}
	data, err := os.ReadFile(filepath.Join(base, "build_report.txt"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !strings.Contains(string(data), "Skipped: 2") {
		t.Errorf("report:\n%s", data)
	}
}

func TestBuild_FailureExitsOne(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	base := t.TempDir()
	writeFile(t, filepath.Join(base, "broken", "go.mod"), "module broken\n")
	manifest := filepath.Join(t.TempDir(), "fleet.yaml")
	writeFile(t, manifest, "repos:\n  - name: broken\n    commands: [\"false\"]\n")

	_, err := execute(t, "build", "--dir", base, "--fleet", manifest, "--workers", "1")
	if err == nil {
		t.Fatal("expected failure")
	}
	if code := ExitCode(err); code != 1 {
		t.Errorf("ExitCode = %d, want 1", code)
	}
	if _, statErr := os.Stat(filepath.Join(base, "build_report.md")); statErr != nil {
		t.Errorf("report should be written even on failure: %v", statErr)
	}
}

func TestDiscover_JSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			fmt.Fprint(w, "[]")
			return
		}
		fmt.Fprint(w, `[{"name":"website","clone_url":"https://github.com/acme/website.git"}]`)
	}))
	defer srv.Close()
	t.Setenv("ORGBUILD_GITHUB_API", srv.URL)

	out, err := execute(t, "discover", "--org", "acme", "--json")
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	var repos []github.Repo
	if err := json.Unmarshal([]byte(out), &repos); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if len(repos) != 1 || repos[0].Name != "website" || repos[0].Source != github.SourceAPI {
		t.Errorf("repos = %+v", repos)
	}
}

func TestConfigSetGet(t *testing.T) {
	home := t.TempDir()
	run := func(args ...string) (string, error) {
		t.Helper()
		viper.Reset()
		resetFlags(rootCmd)
		t.Setenv("HOME", home)
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		return out.String(), err
	}

	if _, err := run("config", "set", "workers", "8"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err := run("config", "get", "workers")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "8" {
		t.Errorf("workers = %q, want 8", out)
	}
	if _, err := run("config", "set", "nope", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestFilterRepos(t *testing.T) {
	repos := []github.Repo{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	kept, unknown := filterRepos(repos, nil)
	if len(kept) != 3 || unknown != nil {
		t.Errorf("no filter: kept=%v unknown=%v", kept, unknown)
	}

	kept, unknown = filterRepos(repos, []string{"c", "zz", "a"})
	if len(kept) != 2 || kept[0].Name != "a" || kept[1].Name != "c" {
		t.Errorf("kept = %+v", kept)
	}
	if len(unknown) != 1 || unknown[0] != "zz" {
		t.Errorf("unknown = %v", unknown)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("x"), 1},
		{"exit error", &ExitError{Code: 3, Err: errors.New("x")}, 3},
		{"wrapped", fmt.Errorf("outer: %w", &ExitError{Code: 2, Err: errors.New("x")}), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelectTools(t *testing.T) {
	tools, err := selectTools([]string{"git", "go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tools) != 2 || tools[1].MinVersion != "1.21.0" {
		t.Errorf("tools = %+v", tools)
	}
	if _, err := selectTools([]string{"make"}); err == nil {
		t.Error("expected error for unknown tool")
	}
}
