package version

import (
	"runtime/debug"
)

// Version information for fuzzymatch
const (
	// Version is the current semantic version
	Version = "0.4.0"
)

// These are set during build time (use -ldflags)
var (
	BuildDate = "development"
	GitCommit = "unknown"
)

// FullInfo returns detailed version information
func FullInfo() string {
	return "fuzzymatch " + Version + " (commit: " + commit() + ", built: " + BuildDate + ")"
}

// commit prefers the ldflags value and falls back to the VCS revision Go
// embeds in the binary
func commit() string {
	if GitCommit != "unknown" {
		return GitCommit
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return GitCommit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return GitCommit
}
