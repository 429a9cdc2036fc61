// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for trellminal.
//
// Configuration comes from a single file named either by the
// TRELLMINAL_CONFIG environment variable (via [Load]) or by the
// --config flag (via [LoadFile]). When neither is given, [Default]
// applies unchanged: the client runs out of the box against the public
// Trello API with the bundled application key.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with API, Store, UI, Auth, Log sections
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other trellminal packages.
package config
