package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/orgbuild-labs/orgbuild/internal/build"
	"github.com/orgbuild-labs/orgbuild/internal/clone"
	"github.com/orgbuild-labs/orgbuild/internal/detect"
)

var started = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func sampleBuild() *build.Summary {
	return &build.Summary{
		Total:      4,
		Successful: []string{"web"},
		Failed:     []string{"svc"},
		Skipped:    []string{"site", "box"},
		Started:    started,
		Duration:   1500 * time.Millisecond,
		Results: []build.Result{
			{Repo: "web", Type: detect.React, Status: build.StatusSuccess, Duration: time.Second,
				Commands: []build.CommandResult{{Command: "npm install"}, {Command: "npm run build"}}},
			{Repo: "svc", Type: detect.JavaMaven, Status: build.StatusFailed, Reason: "compile failed",
				Errors: []string{"command failed: mvn clean compile: exit status 1"}},
			{Repo: "site", Type: detect.HTML, Status: build.StatusSkipped, Reason: "no build required"},
			{Repo: "box", Type: detect.Docker, Status: build.StatusSkipped, Reason: "docker build skipped"},
		},
	}
}

func TestWriteBuildReport_Markdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBuildReport(&buf, sampleBuild(), "acme", Markdown); err != nil {
		t.Fatalf("WriteBuildReport: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# acme Build Report",
		"- **Date:** 2026-03-01 09:30:00",
		"- **Duration:** 1.50 seconds",
		"- **Success Rate:** 25.0%",
		"## Successful Builds",
		"web (react) 1.00s, 2 commands",
		"svc (java-maven): compile failed",
		"mvn clean compile: exit status 1",
		"site: no build required",
		"1. Review failed builds and fix issues",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteBuildReport_TextNoFailures(t *testing.T) {
	s := &build.Summary{Total: 1, Successful: []string{"a"}, Started: started,
		Results: []build.Result{{Repo: "a", Type: detect.Go, Status: build.StatusSuccess}}}
	var buf bytes.Buffer
	if err := WriteBuildReport(&buf, s, "acme", Text); err != nil {
		t.Fatalf("WriteBuildReport: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "acme Build Report\n=================\n") {
		t.Errorf("unexpected text header:\n%s", out)
	}
	if strings.Contains(out, "Failed Builds") || strings.Contains(out, "Review failed") {
		t.Errorf("no failure sections expected:\n%s", out)
	}
	if !strings.Contains(out, "Success Rate: 100.0%") {
		t.Errorf("missing success rate:\n%s", out)
	}
}

func TestWriteCloneReport(t *testing.T) {
	s := &clone.Summary{
		Org: "acme", Total: 3, Started: started, Duration: 2 * time.Second,
		Succeeded: []string{"a", "b"}, Failed: []string{"c"},
		Results: []clone.Result{
			{Repo: "a", Status: clone.StatusCloned},
			{Repo: "b", Status: clone.StatusUpdated},
			{Repo: "c", Status: clone.StatusFailed, Reason: "all clone attempts failed",
				Tried: []string{"https://github.com/acme/c.git", "git@github.com:acme/c.git"}},
		},
	}
	var buf bytes.Buffer
	if err := WriteCloneReport(&buf, s, Text); err != nil {
		t.Fatalf("WriteCloneReport: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"acme Clone Report",
		"Total Repositories: 3",
		"Successful: 2",
		"  - b (updated)",
		"  - c: all clone attempts failed",
		"tried: https://github.com/acme/c.git, git@github.com:acme/c.git",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteFile(t *testing.T) {
	base := t.TempDir()
	path, err := WriteFile(base, "build", Markdown, func(w io.Writer, f Format) error {
		return WriteBuildReport(w, sampleBuild(), "acme", f)
	})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if path != filepath.Join(base, "build_report.md") {
		t.Errorf("path = %q", path)
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "# acme Build Report") {
		t.Errorf("file content:\n%s", data)
	}

	if _, err := WriteFile(filepath.Join(base, "missing"), "clone", Text, func(io.Writer, Format) error { return nil }); err == nil {
		t.Error("expected error for missing base dir")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": Text, "txt": Text, "MD": Markdown, "markdown": Markdown} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("html"); err == nil {
		t.Error("expected error for html")
	}
}

func TestCard(t *testing.T) {
	out := Card("Build complete", []string{"Successful: 3", "Failed: 0"}, true, false)
	for _, want := range []string{"Build complete", "Successful: 3", "\u256d"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("plain card should have no escape codes: %q", out)
	}
}

func TestColorEnabled(t *testing.T) {
	if ColorEnabled(&bytes.Buffer{}, false) {
		t.Error("buffers are never terminals")
	}
	if ColorEnabled(os.Stdout, true) {
		t.Error("noColor must win")
	}
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled(os.Stdout, false) {
		t.Error("NO_COLOR must disable colour")
	}
}
