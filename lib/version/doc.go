// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which trellminal build is running.
//
// Release builds set [Version], [GitCommit], and [BuildTime] with
// -ldflags -X. Builds without those flags take the commit and commit
// time from the VCS stamp the go command embeds, see [Current].
package version
