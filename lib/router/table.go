// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package router

import "strings"

// parameterMarker prefixes a pattern segment that binds a parameter.
const parameterMarker = ":"

// segment is one "/"-separated part of a pattern.
type segment struct {
	text      string
	parameter bool
}

type dynamicRoute struct {
	pattern  string
	segments []segment
	page     Page
}

// Match is the result of resolving a location.
type Match struct {
	// Pattern is the registered pattern that matched.
	Pattern string
	Page    Page
	Params  Params
}

// Table is the set of registered routes. Build it once at startup;
// it is not safe for concurrent mutation.
type Table struct {
	exact   map[string]Page
	dynamic []dynamicRoute
}

// NewTable returns an empty route table.
func NewTable() *Table {
	return &Table{exact: make(map[string]Page)}
}

// Insert registers page under pattern. Registering a literal pattern
// twice replaces the earlier page; a repeated dynamic pattern is
// appended and can never match because the earlier entry wins.
func (table *Table) Insert(pattern string, page Page) *Table {
	segments := splitPattern(pattern)
	isDynamic := false
	for _, part := range segments {
		if part.parameter {
			isDynamic = true
			break
		}
	}
	if !isDynamic {
		table.exact[pattern] = page
		return table
	}
	table.dynamic = append(table.dynamic, dynamicRoute{
		pattern:  pattern,
		segments: segments,
		page:     page,
	})
	return table
}

// Resolve finds the page registered for location. The exact map is
// consulted first; dynamic patterns are then tried in registration
// order.
func (table *Table) Resolve(location string) (Match, bool) {
	if page, ok := table.exact[location]; ok {
		return Match{Pattern: location, Page: page, Params: Params{}}, true
	}

	parts := strings.Split(location, "/")
	for _, route := range table.dynamic {
		if params, ok := matchSegments(route.segments, parts); ok {
			return Match{Pattern: route.pattern, Page: route.page, Params: params}, true
		}
	}
	return Match{}, false
}

// Contains reports whether location resolves to any page.
func (table *Table) Contains(location string) bool {
	_, ok := table.Resolve(location)
	return ok
}

// Patterns returns every registered pattern, literal ones first in no
// particular order, then dynamic ones in registration order.
func (table *Table) Patterns() []string {
	patterns := make([]string, 0, len(table.exact)+len(table.dynamic))
	for pattern := range table.exact {
		patterns = append(patterns, pattern)
	}
	for _, route := range table.dynamic {
		patterns = append(patterns, route.pattern)
	}
	return patterns
}

func splitPattern(pattern string) []segment {
	parts := strings.Split(pattern, "/")
	segments := make([]segment, len(parts))
	for i, part := range parts {
		if name, ok := strings.CutPrefix(part, parameterMarker); ok {
			segments[i] = segment{text: name, parameter: true}
		} else {
			segments[i] = segment{text: part}
		}
	}
	return segments
}

func matchSegments(segments []segment, parts []string) (Params, bool) {
	if len(segments) != len(parts) {
		return nil, false
	}
	for i, part := range segments {
		if !part.parameter && part.text != parts[i] {
			return nil, false
		}
	}
	params := Params{}
	for i, part := range segments {
		if part.parameter {
			params[part.text] = parts[i]
		}
	}
	return params, true
}
