package doctor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/orgbuild-labs/orgbuild/internal/runner"
)

type scriptedRunner map[string]struct {
	out *runner.Output
	err error
}

func (s scriptedRunner) Run(ctx context.Context, cmd runner.Command) (*runner.Output, error) {
	r, ok := s[cmd.Name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", cmd.Name, exec.ErrNotFound)
	}
	return r.out, r.err
}

func TestCheck_Statuses(t *testing.T) {
	r := scriptedRunner{
		"git":  {out: &runner.Output{Stdout: "git version 2.43.0\n"}},
		"node": {out: &runner.Output{Stdout: "v14.21.3\n"}},
		"gh":   {out: &runner.Output{Stdout: "weird output"}},
		"mvn":  {err: errors.New("boom")},
	}
	tools := []Tool{
		{Name: "git", MinVersion: "2.25.0"},
		{Name: "node", MinVersion: "16.0.0"},
		{Name: "gh"},
		{Name: "cargo"},
		{Name: "mvn", Args: []string{"-v"}},
	}

	results := Check(context.Background(), r, tools)
	want := []Status{StatusOK, StatusOutdated, StatusUnknownVersion, StatusMissing, StatusUnknownVersion}
	for i, res := range results {
		if res.Status != want[i] {
			t.Errorf("%s: Status = %q, want %q", res.Tool.Name, res.Status, want[i])
		}
	}
	if results[0].Version != "2.43.0" {
		t.Errorf("git Version = %q", results[0].Version)
	}
	if got := Missing(results); len(got) != 1 || got[0] != "cargo" {
		t.Errorf("Missing = %v, want [cargo]", got)
	}
}

func TestCheck_VersionOnStderr(t *testing.T) {
	r := scriptedRunner{"python3": {out: &runner.Output{Stderr: "Python 3.8.10"}}}
	res := Check(context.Background(), r, []Tool{{Name: "python3"}})
	if res[0].Status != StatusOK || res[0].Version != "3.8.10" {
		t.Errorf("result = %+v", res[0])
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	Print(&buf, []Result{
		{Tool: Tool{Name: "git"}, Status: StatusOK, Version: "2.43.0"},
		{Tool: Tool{Name: "cargo", Purpose: "rust builds"}, Status: StatusMissing},
	})
	out := buf.String()
	for _, want := range []string{"[ OK ] git 2.43.0", "[MISS] cargo not found (rust builds)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheck_RealGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	res := Check(context.Background(), &runner.ExecRunner{}, []Tool{{Name: "git"}})
	if res[0].Status != StatusOK {
		t.Errorf("git status = %q (version %q, err %v)", res[0].Status, res[0].Version, res[0].Err)
	}
}
