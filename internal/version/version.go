package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags during release builds
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
	BuiltBy = "unknown"
)

// BuildInfo describes the running binary
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"built_by"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns build information. Binaries installed with "go install" carry
// no ldflags, so their module version is used instead of "dev".
func Get() BuildInfo {
	return BuildInfo{
		Version:   Short(),
		Commit:    Commit,
		Date:      Date,
		BuiltBy:   BuiltBy,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Info returns version information as a formatted string
func Info() string {
	b := Get()
	return fmt.Sprintf(
		"prexpr %s\nCommit: %s\nBuilt: %s\nGo: %s\nOS/Arch: %s",
		b.Version,
		b.Commit,
		b.Date,
		b.GoVersion,
		b.Platform,
	)
}

// Short returns just the version string
func Short() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}
