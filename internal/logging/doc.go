// Package logging builds the zap logger shared by every command.
//
// Human-readable console output goes to stderr. When a log file is
// configured, the same entries are also written to it as JSON lines.
package logging
