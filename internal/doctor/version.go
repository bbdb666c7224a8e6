package doctor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var versionToken = regexp.MustCompile(`v?(\d+)\.(\d+)(?:\.(\d+))?`)

// ExtractVersion returns the first version-looking token in s, normalized
// to MAJOR.MINOR.PATCH, or "" when there is none.
//
//	"git version 2.43.0"           -> "2.43.0"
//	"go version go1.22.4 linux/amd64" -> "1.22.4"
//	"Python 3.12"                  -> "3.12.0"
func ExtractVersion(s string) string {
	m := versionToken.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	patch := m[3]
	if patch == "" {
		patch = "0"
	}
	return m[1] + "." + m[2] + "." + patch
}

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// AtLeast reports whether version satisfies the minimum.
func AtLeast(version, minimum string) (bool, error) {
	c, err := CompareVersions(version, minimum)
	if err != nil {
		return false, err
	}
	return c >= 0, nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
