package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version (set via ldflags at build time)
	Version = "dev"
	// GitCommit is the git SHA (set via ldflags at build time)
	GitCommit = "unknown"
	// BuildDate is the build date (set via ldflags at build time)
	BuildDate = "unknown"
)

// GetVersion returns the full version information
func GetVersion() string {
	return fmt.Sprintf("linkvet %s (commit: %s, built: %s, go: %s)",
		Version, GitCommit, BuildDate, runtime.Version())
}

// UserAgent returns the client identifier sent with every probe request.
func UserAgent() string {
	return fmt.Sprintf("linkvet/%s (evidence-link-checker)", Version)
}
