// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSpliceOverlay(t *testing.T) {
	view := "aaaaaaaa\nbbbbbbbb\ncccccccc"
	result := ansi.Strip(SpliceOverlay(view, []string{"XX", "YY"}, 3, 1))
	want := "aaaaaaaa\nbbbXXbbb\ncccYYccc"
	if result != want {
		t.Errorf("got %q, want %q", result, want)
	}
}

func TestDialogRenderHasFixedWidth(t *testing.T) {
	dialog := Dialog{
		Title:  "Login",
		Lines:  []string{"Open https://trello.com/1/authorize?expiration=1day&name=Trellminal&scope=read in a browser"},
		Footer: "Esc close",
	}
	lines := dialog.Render(DefaultTheme, 40)
	if len(lines) < 5 {
		t.Fatalf("expected wrapped body plus chrome, got %d lines", len(lines))
	}
	for _, line := range lines {
		if width := ansi.StringWidth(line); width != 40 {
			t.Errorf("line width %d, want 40: %q", width, ansi.Strip(line))
		}
	}
	if !strings.Contains(ansi.Strip(lines[0]), "Login") {
		t.Errorf("title missing from %q", ansi.Strip(lines[0]))
	}
}

func TestCenterOverlay(t *testing.T) {
	view := strings.Repeat(".........\n", 4) + "........."
	result := ansi.Strip(CenterOverlay(view, []string{"###"}, 9, 5))
	lines := strings.Split(result, "\n")
	if lines[2] != "...###..." {
		t.Errorf("middle line = %q", lines[2])
	}
}

func TestExtractExcerpt(t *testing.T) {
	excerpt := ExtractExcerpt("\n\n  first line  \n\nsecond line that is long\nthird", 10, 2)
	if len(excerpt) != 2 || excerpt[0] != "first line" || ansi.StringWidth(excerpt[1]) > 10 {
		t.Errorf("unexpected excerpt %q", excerpt)
	}
}

func TestScrollbar(t *testing.T) {
	bar := ansi.Strip(Scrollbar(DefaultTheme, Scroll{Total: 8, Visible: 4, Offset: 4}, 4, true))
	if bar != "│\n│\n┃\n┃" {
		t.Errorf("unexpected scrollbar %q", bar)
	}
	top := ansi.Strip(Scrollbar(DefaultTheme, Scroll{Total: 8, Visible: 4}, 4, true))
	if top != "┃\n┃\n│\n│" {
		t.Errorf("unexpected scrollbar at the top %q", top)
	}
	full := ansi.Strip(Scrollbar(DefaultTheme, Scroll{Total: 1, Visible: 4}, 2, false))
	if full != "┃\n┃" {
		t.Errorf("content that fits should fill the track, got %q", full)
	}
	if (Scroll{Total: 3, Visible: 3}).Fits() != true || (Scroll{Total: 4, Visible: 3}).Fits() {
		t.Error("Fits disagrees with Total and Visible")
	}
}
