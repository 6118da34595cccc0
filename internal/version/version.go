// Package version exposes build metadata stamped via -ldflags.
package version

import "fmt"

var (
	// Version is the semantic version, overridden at build time.
	Version = "0.1.0-dev"
	// Commit is the git commit hash, overridden at build time.
	Commit = "unknown"
)

// Full returns the human-readable version string.
func Full() string {
	return fmt.Sprintf("%s (%s)", Version, Commit)
}
