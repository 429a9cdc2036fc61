// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Trellminal packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] wrap the
// select-with-timeout pattern so tests that coordinate goroutines (a
// navigation blocked inside a slow mount, a callback request waiting
// for its reply) never hang the suite.
//
// [WriteFile] writes a fixture into a per-test temporary directory and
// returns its path. [UniqueID] returns monotonically increasing
// identifiers for fixtures that must not collide.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil
