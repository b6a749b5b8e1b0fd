package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set through -ldflags "-X github.com/MrSnakeDoc/linkedit/internal/version.Version=v0.1.0" etc.
var (
	Version   = "dev"                           // ex: v0.1.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2025-08-11T18:42:00Z
	GoVersion = runtime.Version()               // go version
)

func init() {
	if Commit != "none" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	// go build stamps VCS data when ldflags did not
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) > 7 {
				Commit = s.Value[:7]
			} else if s.Value != "" {
				Commit = s.Value
			}
		case "vcs.modified":
			if s.Value == "true" && Commit != "none" {
				Commit += "-dirty"
			}
		}
	}
}

// String is the one-line build summary.
func String() string {
	return fmt.Sprintf("%s (commit=%s, built=%s, go=%s)", Version, Commit, BuildDate, GoVersion)
}
