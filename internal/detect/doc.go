// Package detect classifies a repository directory into a project type by
// probing for marker files such as package.json, pom.xml or Cargo.toml.
package detect
