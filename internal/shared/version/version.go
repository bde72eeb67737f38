// Package version holds the build version reported by /health and the CLI.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time with -ldflags "-X .../version.Version=1.2.3".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Normalize returns v trimmed and prefixed with "v", as x/mod/semver expects.
func Normalize(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.HasPrefix(v, "v") {
		return v
	}
	return "v" + v
}

// IsRelease reports whether v is a tagged semver release rather than a dev
// or pre-release build.
func IsRelease(v string) bool {
	n := Normalize(v)
	return semver.IsValid(n) && semver.Prerelease(n) == ""
}

// String formats the build for the version command.
func String() string {
	v := Version
	if IsRelease(v) {
		v = semver.Canonical(Normalize(v))
	}
	return v + " (commit " + Commit + ", built " + BuildDate + ")"
}
