// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func newTestList() *List {
	list := NewList(DefaultTheme, DefaultKeyMap)
	list.SetItems([]ListItem{
		{ID: "w1", Title: "Engineering"},
		{ID: "w2", Title: "Marketing"},
		{ID: "w3", Title: "Operations"},
	})
	return list
}

func TestListMovement(t *testing.T) {
	list := newTestList()

	list.Update(runes("j"))
	list.Update(tea.KeyMsg{Type: tea.KeyDown})
	if item, _ := list.Selected(); item.ID != "w3" {
		t.Errorf("after two downs selected %s, want w3", item.ID)
	}
	list.Update(runes("j"))
	if item, _ := list.Selected(); item.ID != "w3" {
		t.Errorf("cursor should clamp at the bottom, got %s", item.ID)
	}
	list.Update(runes("g"))
	if item, _ := list.Selected(); item.ID != "w1" {
		t.Errorf("g should jump to top, got %s", item.ID)
	}
}

func TestListFilterCapturesPrintableKeys(t *testing.T) {
	list := newTestList()

	if !list.Update(runes("/")) || !list.Filtering() {
		t.Fatal("/ should activate the filter")
	}
	// "j" is a movement key outside the filter; inside it is text.
	list.Update(runes("m"))
	list.Update(runes("k"))
	if list.Len() != 1 {
		t.Fatalf("filter mk should leave one item, got %d", list.Len())
	}
	if item, _ := list.Selected(); item.ID != "w2" {
		t.Errorf("selected %s, want w2", item.ID)
	}

	list.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if list.Filtering() {
		t.Error("enter should leave filter mode")
	}
	if list.Len() != 1 {
		t.Error("enter should keep the filter text applied")
	}

	list.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if list.Len() != 3 {
		t.Errorf("esc should clear the filter, got %d items", list.Len())
	}
}

func TestListBackspaceOnEmptyFilterDeactivates(t *testing.T) {
	list := newTestList()
	list.Update(runes("/"))
	list.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if list.Filtering() {
		t.Error("backspace on an empty filter should deactivate it")
	}
}

func TestListUnhandledKey(t *testing.T) {
	list := newTestList()
	if list.Update(runes("x")) {
		t.Error("x is not a list key")
	}
	if list.Update(tea.KeyMsg{Type: tea.KeyBackspace}) {
		t.Error("backspace outside the filter belongs to the page")
	}
}

func TestListViewScrollsToCursor(t *testing.T) {
	list := NewList(DefaultTheme, DefaultKeyMap)
	var items []ListItem
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		items = append(items, ListItem{ID: name, Title: "board " + name})
	}
	list.SetItems(items)
	list.Update(runes("G"))

	view := ansi.Strip(list.View(30, 3))
	lines := strings.Split(view, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), view)
	}
	if !strings.Contains(lines[2], "board f") {
		t.Errorf("last line should show the selected item, got %q", lines[2])
	}
	for _, line := range lines {
		if width := ansi.StringWidth(line); width != 30 {
			t.Errorf("line width %d, want 30: %q", width, line)
		}
	}
}

func TestListViewEmpty(t *testing.T) {
	list := NewList(DefaultTheme, DefaultKeyMap)
	if view := ansi.Strip(list.View(30, 5)); !strings.Contains(view, "nothing here") {
		t.Errorf("unexpected empty view %q", view)
	}
	if _, ok := list.Selected(); ok {
		t.Error("empty list has no selection")
	}
}
