// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Release builds stamp these with -ldflags -X. A plain `go install`
// leaves them empty and the module's VCS settings are used instead.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildTime = ""
)

// Build describes the running binary.
type Build struct {
	Version string
	Commit  string
	Time    string
	// Modified is set for builds from a dirty working tree.
	Modified bool
}

// Current returns the stamped values, filling gaps from the Go build
// information. Fields that neither source knows are "unknown".
func Current() Build {
	info, _ := debug.ReadBuildInfo()
	return resolve(info)
}

func resolve(info *debug.BuildInfo) Build {
	build := Build{Version: Version, Commit: GitCommit, Time: BuildTime}
	if info != nil {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if build.Commit == "" {
					build.Commit = shortRevision(setting.Value)
				}
			case "vcs.time":
				if build.Time == "" {
					build.Time = setting.Value
				}
			case "vcs.modified":
				build.Modified = setting.Value == "true"
			}
		}
	}
	if build.Commit == "" {
		build.Commit = "unknown"
	}
	if build.Time == "" {
		build.Time = "unknown"
	}
	return build
}

func shortRevision(revision string) string {
	if len(revision) > 12 {
		return revision[:12]
	}
	return revision
}

// String is the one-line form used by --version.
func (build Build) String() string {
	commit := build.Commit
	if build.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", build.Version, commit, build.Time)
}

// Info is Current().String().
func Info() string {
	return Current().String()
}

// Full adds the toolchain and target platform to Info.
func Full() string {
	var text strings.Builder
	text.WriteString(Info())
	fmt.Fprintf(&text, "\n  Go: %s", runtime.Version())
	fmt.Fprintf(&text, "\n  Platform: %s/%s", runtime.GOOS, runtime.GOARCH)
	return text.String()
}

// Short returns Version alone, as the status bar shows it.
func Short() string {
	return Version
}
