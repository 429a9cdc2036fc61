// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package store persists trellminal's saved accounts in a small TOML
// file (by default ~/.trellminaldb).
//
// A [Store] is shared by the render loop and background navigations.
// Every method takes the store's mutex for a short, non-blocking
// critical section; no method performs network I/O while holding it.
// [Store.Save] snapshots the data under the lock and writes the file
// after releasing it.
package store
