// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the shared terminal components trellminal's
// pages are built from: the color theme, a filterable selection list,
// centered dialogs spliced over a page, a scrollbar, fuzzy matching,
// and a markdown renderer for card descriptions.
//
// Pages own their data and layout. This package only knows about
// strings, widths, and styles.
package tui
