// Package cmd holds the build identity of the savekeep binary.
package cmd

import "runtime/debug"

// Set via -ldflags "-X github.com/thoreinstein/savekeep/cmd.Version=..." by
// release builds. Binaries from go install leave them at their defaults and
// Info falls back to the module build info.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// BuildInfo identifies a savekeep build.
type BuildInfo struct {
	Version string `json:"version" yaml:"version" toml:"version"`
	Commit  string `json:"commit" yaml:"commit" toml:"commit"`
	Date    string `json:"date" yaml:"date" toml:"date"`
	Go      string `json:"go" yaml:"go" toml:"go"`
}

// Info returns the build identity.
func Info() BuildInfo {
	return infoFrom(debug.ReadBuildInfo())
}

func infoFrom(bi *debug.BuildInfo, ok bool) BuildInfo {
	info := BuildInfo{Version: Version, Commit: Commit, Date: Date}
	if !ok || bi == nil {
		return info
	}
	info.Go = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	return info
}
