// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package router

import "errors"

var (
	// ErrRouteNotFound reports a location that no registered pattern
	// matches.
	ErrRouteNotFound = errors.New("route not found")

	// ErrTooManyRedirects is shown on the error route when a chain of
	// mount-time redirects exceeds Config.MaxRedirects.
	ErrTooManyRedirects = errors.New("too many redirects")
)
