// Package cli defines the Cobra command tree for the orgbuild CLI. Each file
// in this package registers one top-level command (discover, clone, build,
// etc.) with the root command. Command implementations delegate to internal
// packages for the work and only handle flags, settings and output.
package cli
