package config

import "fmt"

// Build metadata, overridden from main with -ldflags values
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// SetBuildFlags records the release metadata of the binary
func SetBuildFlags(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
}

// VersionString describes the running build. Development builds only show the version.
func VersionString() string {
	if Commit == "unknown" {
		return fmt.Sprintf("myths version %s", Version)
	}
	return fmt.Sprintf("myths version %s (commit %s, built %s)", Version, Commit, Date)
}
