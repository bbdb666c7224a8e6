// Package clone clones or updates an organization's repositories into a
// workspace directory, trying several remote URLs per repository.
package clone
