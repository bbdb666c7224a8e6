// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults cover an empty or missing file.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	GitHubRepo  string `yaml:"github_repo"`
	DefaultOrg  string `yaml:"default_org"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "orgbuild",
			DisplayName: "OrgBuild",
			Description: "Clone and build every repository of a GitHub organization",
			HomeDir:     ".orgbuild",
			EnvPrefix:   "ORGBUILD",
			GoModule:    "github.com/orgbuild-labs/orgbuild",
			GitHubRepo:  "orgbuild-labs/orgbuild",
			DefaultOrg:  "tozsolutions",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "orgbuild").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".orgbuild").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "ORGBUILD").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GitHubRepo returns the "owner/repo" string of this tool.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// DefaultOrg returns the organization used when none is configured.
func DefaultOrg() string { load(); return defaults.DefaultOrg }

// DefaultBaseDir returns the workspace directory used when none is configured,
// e.g. "./tozsolutions_repos".
func DefaultBaseDir() string {
	load()
	return "./" + defaults.DefaultOrg + "_repos"
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("ORG") → "ORGBUILD_ORG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
