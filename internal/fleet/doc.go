// Package fleet parses and validates the optional fleet manifest, a YAML file
// that pins the organization's repository list and carries per-repository
// overrides (clone URL, forced project type, custom build commands, skip).
package fleet
