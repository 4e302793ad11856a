// Package version reports the swatch build, set with -ldflags -X.
package version

import (
	"fmt"
	"runtime"
)

// Build metadata. Release builds override all three.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String is the line printed by "swatch version" and --version.
func String() string {
	platform := runtime.GOOS + "/" + runtime.GOARCH
	if Commit == "unknown" || Date == "unknown" {
		return fmt.Sprintf("swatch version %s (%s, %s)", Version, runtime.Version(), platform)
	}
	return fmt.Sprintf("swatch version %s (commit: %s, built: %s, %s, %s)",
		Version, shortCommit(Commit), Date, runtime.Version(), platform)
}

// UserAgent returns the User-Agent sent on outbound requests.
func UserAgent() string {
	return "swatch/" + Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
