// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stamp(t *testing.T, commit, buildTime string) {
	t.Helper()
	savedCommit, savedTime := GitCommit, BuildTime
	GitCommit, BuildTime = commit, buildTime
	t.Cleanup(func() { GitCommit, BuildTime = savedCommit, savedTime })
}

func vcsInfo(revision, when, modified string) *debug.BuildInfo {
	return &debug.BuildInfo{Settings: []debug.BuildSetting{
		{Key: "vcs", Value: "git"},
		{Key: "vcs.revision", Value: revision},
		{Key: "vcs.time", Value: when},
		{Key: "vcs.modified", Value: modified},
	}}
}

func TestStampedValuesWin(t *testing.T) {
	stamp(t, "abc1234", "2026-03-01T09:00:00Z")
	build := resolve(vcsInfo("0123456789abcdef0123", "2025-01-01T00:00:00Z", "false"))
	if build.Commit != "abc1234" {
		t.Errorf("Commit = %q, want the stamped commit", build.Commit)
	}
	if build.Time != "2026-03-01T09:00:00Z" {
		t.Errorf("Time = %q, want the stamped time", build.Time)
	}
	if got := build.String(); got != Version+" (abc1234, 2026-03-01T09:00:00Z)" {
		t.Errorf("String() = %q", got)
	}
}

func TestBuildInfoFillsGaps(t *testing.T) {
	stamp(t, "", "")
	build := resolve(vcsInfo("0123456789abcdef0123", "2025-01-01T00:00:00Z", "true"))
	if build.Commit != "0123456789ab" {
		t.Errorf("Commit = %q, want the shortened revision", build.Commit)
	}
	if build.Time != "2025-01-01T00:00:00Z" {
		t.Errorf("Time = %q", build.Time)
	}
	if !strings.Contains(build.String(), "0123456789ab-dirty") {
		t.Errorf("String() = %q, want the dirty marker", build.String())
	}
}

func TestUnknownWithoutAnySource(t *testing.T) {
	stamp(t, "", "")
	build := resolve(nil)
	if build.Commit != "unknown" || build.Time != "unknown" {
		t.Errorf("build = %+v, want unknown commit and time", build)
	}
}

func TestFullIncludesToolchain(t *testing.T) {
	full := Full()
	if !strings.HasPrefix(full, Version+" (") {
		t.Errorf("Full() = %q, want it to start with the version", full)
	}
	if !strings.Contains(full, "\n  Go: ") {
		t.Errorf("Full() = %q, want the Go version", full)
	}
}
