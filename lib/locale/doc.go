// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package locale holds the user-facing strings of the terminal UI.
//
// Messages live in TOML files embedded into the binary, one file per
// language (messages/active.<tag>.toml), and are resolved through a
// go-i18n bundle. A Catalog is bound to one preferred language and
// falls back to English for messages the language does not define,
// then to the message ID itself, so a missing translation degrades
// to something readable instead of an empty string.
package locale
