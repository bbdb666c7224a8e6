// Package config manages user-level settings stored at ~/.orgbuild/config.yaml.
// Values resolve in the order flag, ORGBUILD_* environment variable, config
// file, then built-in default.
package config
