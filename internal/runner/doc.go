// Package runner executes external toolchain commands (git, npm, mvn, cargo,
// ...) as child processes with a wall-clock timeout, capturing stdout, stderr
// and the exit code. The Runner interface lets clone and build logic be
// exercised with fakes.
package runner
