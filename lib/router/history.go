// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package router

import "slices"

// History is the stack of visited locations. It is never empty once
// constructed; Pop refuses to remove the last entry.
type History struct {
	entries []string
}

// NewHistory returns a history containing only initial.
func NewHistory(initial string) *History {
	return &History{entries: []string{initial}}
}

// Peek returns the current location.
func (history *History) Peek() string {
	return history.entries[len(history.entries)-1]
}

// Push appends location as the new current location.
func (history *History) Push(location string) {
	history.entries = append(history.entries, location)
}

// Pop removes and returns the current location. It returns false and
// leaves the history unchanged when only one entry remains.
func (history *History) Pop() (string, bool) {
	if len(history.entries) <= 1 {
		return "", false
	}
	top := history.entries[len(history.entries)-1]
	history.entries = history.entries[:len(history.entries)-1]
	return top, true
}

// Len returns the number of entries.
func (history *History) Len() int {
	return len(history.entries)
}

// Entries returns a copy of the stack, oldest first.
func (history *History) Entries() []string {
	return slices.Clone(history.entries)
}

// takeTop removes the top entry even when it is the last one. The
// router only calls it inside a navigation that pushes before the lock
// is released.
func (history *History) takeTop() string {
	top := history.entries[len(history.entries)-1]
	history.entries = history.entries[:len(history.entries)-1]
	return top
}
