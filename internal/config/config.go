package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/orgbuild-labs/orgbuild/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyOrg            = "org"
	KeyBaseDir        = "base_dir"
	KeyToken          = "github_token"
	KeyWorkers        = "workers"
	KeyCloneTimeout   = "clone_timeout"
	KeyPullTimeout    = "pull_timeout"
	KeyCommandTimeout = "command_timeout"
	KeyLogLevel       = "log_level"
	KeyLogFile        = "log_file"
	KeyGitHubAPI      = "github_api"
	KeyFleetFile      = "fleet_file"
)

// KnownKeys lists every key config set accepts.
var KnownKeys = []string{
	KeyOrg, KeyBaseDir, KeyToken, KeyWorkers, KeyCloneTimeout, KeyPullTimeout,
	KeyCommandTimeout, KeyLogLevel, KeyLogFile, KeyGitHubAPI, KeyFleetFile,
}

// IsKnownKey reports whether key is one of KnownKeys.
func IsKnownKey(key string) bool {
	for _, k := range KnownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Settings is a typed snapshot of the resolved configuration.
type Settings struct {
	Org            string
	BaseDir        string
	Token          string
	Workers        int
	CloneTimeout   time.Duration
	PullTimeout    time.Duration
	CommandTimeout time.Duration
	LogLevel       string
	LogFile        string
	GitHubAPI      string
	FleetFile      string
}

// Dir returns the path to the config directory (~/.orgbuild/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.orgbuild/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// SetDefaults registers the built-in default for every known key.
func SetDefaults() {
	viper.SetDefault(KeyOrg, branding.DefaultOrg())
	viper.SetDefault(KeyBaseDir, branding.DefaultBaseDir())
	viper.SetDefault(KeyWorkers, 4)
	viper.SetDefault(KeyCloneTimeout, 10*time.Minute)
	viper.SetDefault(KeyPullTimeout, 5*time.Minute)
	viper.SetDefault(KeyCommandTimeout, 10*time.Minute)
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyGitHubAPI, "https://api.github.com")
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	SetDefaults()
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// GITHUB_TOKEN is the conventional name; the prefixed form still wins.
	_ = viper.BindEnv(KeyToken, branding.EnvVar(KeyToken), "GITHUB_TOKEN")

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Current returns the resolved settings.
func Current() Settings {
	workers := viper.GetInt(KeyWorkers)
	if workers < 1 {
		workers = 1
	}
	return Settings{
		Org:            viper.GetString(KeyOrg),
		BaseDir:        viper.GetString(KeyBaseDir),
		Token:          viper.GetString(KeyToken),
		Workers:        workers,
		CloneTimeout:   viper.GetDuration(KeyCloneTimeout),
		PullTimeout:    viper.GetDuration(KeyPullTimeout),
		CommandTimeout: viper.GetDuration(KeyCommandTimeout),
		LogLevel:       viper.GetString(KeyLogLevel),
		LogFile:        viper.GetString(KeyLogFile),
		GitHubAPI:      viper.GetString(KeyGitHubAPI),
		FleetFile:      viper.GetString(KeyFleetFile),
	}
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
