// Package build detects each repository's project type, runs the matching
// recipe through a Runner and aggregates the outcomes.
package build
