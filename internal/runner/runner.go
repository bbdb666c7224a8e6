package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errors.New("command timed out")

// Runner executes a single command.
type Runner interface {
	// Run executes cmd and returns its captured output. A non-zero exit is
	// reported through Output.ExitCode, not as an error.
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// Command describes one external process invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Env     []string // extra KEY=VALUE entries on top of os.Environ()
	Timeout time.Duration
}

// String renders the command the way it would be typed in a shell.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Output captures the result of a command execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	TimedOut bool
}

// Success reports whether the command exited with status 0.
func (o *Output) Success() bool {
	return o != nil && o.ExitCode == 0 && !o.TimedOut
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr optionally receive a live copy of the output.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes cmd via exec.CommandContext, enforcing cmd.Timeout when set.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (*Output, error) {
	bin, err := resolve(cmd)
	if err != nil {
		return nil, err
	}

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	c := exec.CommandContext(ctx, bin, cmd.Args...)
	c.Dir = cmd.Dir
	// Grandchildren holding the output pipes must not block Wait forever.
	c.WaitDelay = time.Second
	if len(cmd.Env) > 0 {
		env := os.Environ()
		for _, kv := range cmd.Env {
			if k, v, ok := strings.Cut(kv, "="); ok {
				env = SetEnv(env, k, v)
			}
		}
		c.Env = env
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	c.Stdout = teeTo(&stdoutBuf, r.Stdout)
	c.Stderr = teeTo(&stderrBuf, r.Stderr)

	start := time.Now()
	err = c.Run()

	output := &Output{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: time.Since(start),
	}

	if ctx.Err() == context.DeadlineExceeded {
		output.TimedOut = true
		output.ExitCode = -1
		return output, fmt.Errorf("%s: %w after %s", cmd.String(), ErrTimeout, cmd.Timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("executing %s: %w", cmd.String(), err)
	}

	return output, nil
}

// resolve finds the executable. Relative paths such as ./gradlew are
// resolved against the command's working directory, not ours.
func resolve(cmd Command) (string, error) {
	if strings.ContainsRune(cmd.Name, '/') && !filepath.IsAbs(cmd.Name) && cmd.Dir != "" {
		bin := filepath.Join(cmd.Dir, cmd.Name)
		if _, err := os.Stat(bin); err != nil {
			return "", fmt.Errorf("%s not found in %s: %w", cmd.Name, cmd.Dir, err)
		}
		return bin, nil
	}
	bin, err := exec.LookPath(cmd.Name)
	if err != nil {
		return "", fmt.Errorf("%s not found in PATH: %w", cmd.Name, err)
	}
	return bin, nil
}

func teeTo(buf *bytes.Buffer, w io.Writer) io.Writer {
	if w == nil {
		return buf
	}
	return io.MultiWriter(buf, w)
}

// SetEnv sets or replaces an environment variable in the env slice.
func SetEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// Preview trims s and truncates it to n characters, appending "..." when cut.
func Preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// Split parses a simple space-separated command line into a Command.
// Quoting is not supported; table entries never need it.
func Split(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}
	}
	return Command{Name: fields[0], Args: fields[1:]}
}
