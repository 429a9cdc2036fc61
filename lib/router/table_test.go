// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package router

import "testing"

func TestTable_DynamicPattern(t *testing.T) {
	boards := newFakePage("boards", nil)
	table := NewTable().Insert("/w/:w/boards", boards)

	match, ok := table.Resolve("/w/abc123/boards")
	if !ok {
		t.Fatal("expected /w/abc123/boards to resolve")
	}
	if match.Page != boards {
		t.Error("resolved to wrong page")
	}
	if match.Pattern != "/w/:w/boards" {
		t.Errorf("Pattern = %q", match.Pattern)
	}
	if len(match.Params) != 1 || match.Params["w"] != "abc123" {
		t.Errorf("Params = %v, want {w: abc123}", match.Params)
	}

	if _, ok := table.Resolve("/w/abc123/cards"); ok {
		t.Error("literal segment mismatch must not resolve")
	}
	if _, ok := table.Resolve("/w/abc123/boards/extra"); ok {
		t.Error("segment count mismatch must not resolve")
	}
	if _, ok := table.Resolve("/w/boards"); ok {
		t.Error("shorter location must not resolve")
	}
}

func TestTable_ParameterBindsRawSegment(t *testing.T) {
	table := NewTable().Insert("/error/:description", newFakePage("error", nil))

	match, ok := table.Resolve("/error/rate%20limited%2Fretry")
	if !ok {
		t.Fatal("expected escaped segment to resolve")
	}
	if match.Params["description"] != "rate%20limited%2Fretry" {
		t.Errorf("raw value = %q, want it unmodified", match.Params["description"])
	}
	if got := match.Params.Unescaped("description"); got != "rate limited/retry" {
		t.Errorf("Unescaped() = %q", got)
	}
}

func TestTable_ExactBeforeDynamic(t *testing.T) {
	exact := newFakePage("exact", nil)
	dynamic := newFakePage("dynamic", nil)
	table := NewTable().
		Insert("/b/:board", dynamic).
		Insert("/b/new", exact)

	match, _ := table.Resolve("/b/new")
	if match.Page != exact {
		t.Error("exact route should win over an earlier dynamic route")
	}
	match, _ = table.Resolve("/b/other")
	if match.Page != dynamic {
		t.Error("dynamic route should match other ids")
	}
}

func TestTable_FirstRegisteredDynamicWins(t *testing.T) {
	first := newFakePage("first", nil)
	second := newFakePage("second", nil)
	table := NewTable().
		Insert("/x/:a", first).
		Insert("/:b/y", second)

	match, ok := table.Resolve("/x/y")
	if !ok || match.Page != first {
		t.Error("first registered matching pattern should win")
	}
	if match.Params["a"] != "y" {
		t.Errorf("Params = %v", match.Params)
	}
}

func TestTable_Contains(t *testing.T) {
	table := NewTable().
		Insert("/", newFakePage("home", nil)).
		Insert("/c/:card", newFakePage("card", nil))

	for location, want := range map[string]bool{
		"/":        true,
		"/c/42":    true,
		"/c":       false,
		"/missing": false,
		"":         false,
	} {
		if got := table.Contains(location); got != want {
			t.Errorf("Contains(%q) = %v, want %v", location, got, want)
		}
	}
}

func TestParams_SeedDoesNotOverridePatternParams(t *testing.T) {
	params := Params{"origin": "from-pattern"}
	params.seed("/now", "/before")

	if params[ParamLocation] != "/now" {
		t.Errorf("location = %q", params[ParamLocation])
	}
	if params[ParamOrigin] != "from-pattern" {
		t.Errorf("pattern-bound origin was overwritten: %q", params[ParamOrigin])
	}
}

func TestHistory_NeverEmpty(t *testing.T) {
	history := NewHistory("/")
	if _, ok := history.Pop(); ok {
		t.Fatal("popping the last entry must be refused")
	}
	history.Push("/a")
	history.Push("/b")

	top, ok := history.Pop()
	if !ok || top != "/b" {
		t.Errorf("Pop() = %q, %v", top, ok)
	}
	if history.Peek() != "/a" || history.Len() != 2 {
		t.Errorf("after pop: %v", history.Entries())
	}
}
