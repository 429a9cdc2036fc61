// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package router

import "net/url"

// Reserved parameter names seeded into every navigation.
const (
	// ParamLocation is the resolved location being mounted.
	ParamLocation = "location"

	// ParamOrigin is the location being left.
	ParamOrigin = "origin"
)

// Params maps parameter names to values. Values bound from a pattern
// are the raw path segments, unmodified.
type Params map[string]string

// Get returns the named parameter, or "" when absent.
func (params Params) Get(name string) string {
	return params[name]
}

// Unescaped returns the named parameter with path escaping removed.
// Routes built with [EscapeSegment] carry values that may contain "/";
// pages read them back through this method. A malformed escape is
// returned as-is.
func (params Params) Unescaped(name string) string {
	raw := params[name]
	value, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return value
}

// seed inserts the reserved keys unless the pattern already bound
// parameters with those names.
func (params Params) seed(location, origin string) {
	if _, ok := params[ParamLocation]; !ok {
		params[ParamLocation] = location
	}
	if _, ok := params[ParamOrigin]; !ok {
		params[ParamOrigin] = origin
	}
}

// EscapeSegment escapes value so it occupies exactly one path segment.
func EscapeSegment(value string) string {
	return url.PathEscape(value)
}
