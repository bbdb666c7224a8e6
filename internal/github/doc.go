// Package github discovers an organization's repositories through the
// GitHub REST API, the gh CLI, a fleet manifest or a built-in fallback list,
// and caches API results on disk.
package github
