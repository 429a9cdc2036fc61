// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package statusbar

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/trellminal/trellminal/lib/clock"
	"github.com/trellminal/trellminal/lib/locale"
	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/tui"
)

func newTestBar() (*Model, *clock.FakeClock) {
	fake := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	return New(tui.DefaultTheme, tui.DefaultKeyMap, locale.MustNew(), fake), fake
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeString(t *testing.T, bar *Model, text string) {
	t.Helper()
	for _, r := range text {
		operation, consumed := bar.Update(runeKey(r))
		if !consumed {
			t.Fatalf("key %q not consumed in command mode", r)
		}
		if operation.Kind != router.OperationConsume {
			t.Fatalf("key %q produced %v, want consume", r, operation)
		}
	}
}

func TestNormalModePassesKeysThrough(t *testing.T) {
	bar, _ := newTestBar()
	for _, r := range "qa" {
		operation, consumed := bar.Update(runeKey(r))
		if consumed {
			t.Errorf("key %q consumed in normal mode", r)
		}
		if operation.Kind == router.OperationExit {
			t.Errorf("key %q produced exit without the command key", r)
		}
	}
	if _, consumed := bar.Update(tea.KeyMsg{Type: tea.KeyEnter}); consumed {
		t.Error("enter consumed in normal mode")
	}
	if bar.Mode() != ModeNormal {
		t.Errorf("Mode() = %v, want normal", bar.Mode())
	}
}

func TestCommandQuitAll(t *testing.T) {
	bar, _ := newTestBar()
	operation, consumed := bar.Update(runeKey(':'))
	if !consumed || operation.Kind != router.OperationConsume {
		t.Fatalf("':' = (%v, %v), want (consume, true)", operation, consumed)
	}
	if bar.Mode() != ModeCommand {
		t.Fatalf("Mode() = %v after ':', want command", bar.Mode())
	}

	typeString(t, bar, "qa")
	if bar.Buffer() != "qa" {
		t.Errorf("Buffer() = %q, want %q", bar.Buffer(), "qa")
	}

	operation, consumed = bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !consumed || operation.Kind != router.OperationExit {
		t.Errorf("enter = (%v, %v), want (exit, true)", operation, consumed)
	}
	if bar.Mode() != ModeNormal {
		t.Errorf("Mode() = %v after enter, want normal", bar.Mode())
	}
	if bar.Buffer() != "" {
		t.Errorf("Buffer() = %q after enter, want empty", bar.Buffer())
	}
}

func TestEscapeCancelsCommand(t *testing.T) {
	bar, _ := newTestBar()
	bar.Update(runeKey(':'))
	typeString(t, bar, "q")

	operation, consumed := bar.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !consumed || operation.Kind != router.OperationConsume {
		t.Errorf("esc = (%v, %v), want (consume, true)", operation, consumed)
	}
	if bar.Mode() != ModeNormal {
		t.Errorf("Mode() = %v after esc, want normal", bar.Mode())
	}

	// The cancelled buffer must not leak into the next command.
	bar.Update(runeKey(':'))
	operation, _ = bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if operation.Kind != router.OperationConsume {
		t.Errorf("empty command = %v, want consume", operation)
	}
}

func TestEditingKeysAreConsumed(t *testing.T) {
	bar, _ := newTestBar()
	bar.Update(runeKey(':'))
	typeString(t, bar, "backx")

	operation, consumed := bar.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if !consumed || operation.Kind != router.OperationConsume {
		t.Errorf("backspace = (%v, %v), want (consume, true)", operation, consumed)
	}
	if _, consumed := bar.Update(tea.KeyMsg{Type: tea.KeyLeft}); !consumed {
		t.Error("left arrow not consumed in command mode")
	}
	bar.Update(tea.KeyMsg{Type: tea.KeyEnd})

	operation, _ = bar.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if operation.Kind != router.OperationNavigateBackward {
		t.Errorf("command %q = %v, want navigate_backward", "back", operation)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		command string
		want    router.Operation
	}{
		{"q", router.Exit()},
		{"qa", router.Exit()},
		{"q!", router.Exit()},
		{"  q  ", router.Exit()},
		{"back", router.NavigateBackward()},
		{"help", router.Navigate(HelpLocation)},
		{"", router.Consume()},
		{"quit", router.Consume()},
		{"wq", router.Consume()},
		{"Q", router.Consume()},
	}
	for _, test := range tests {
		if got := ParseCommand(test.command); got != test.want {
			t.Errorf("ParseCommand(%q) = %v, want %v", test.command, got, test.want)
		}
	}
}

func TestNoticeExpires(t *testing.T) {
	bar, fake := newTestBar()
	bar.Notify("listener stopped", slog.LevelWarn)

	if view := ansi.Strip(bar.View(120, "/")); !strings.Contains(view, "listener stopped") {
		t.Errorf("view %q does not show the notice", view)
	}

	fake.Advance(NoticeDuration)
	if _, ok := bar.CurrentNotice(); ok {
		t.Error("notice still visible after NoticeDuration")
	}
	view := ansi.Strip(bar.View(120, "/"))
	if strings.Contains(view, "listener stopped") {
		t.Errorf("view %q still shows the expired notice", view)
	}
	if !strings.Contains(view, ": for commands") {
		t.Errorf("view %q does not show the key hint", view)
	}
}

func TestViewWidth(t *testing.T) {
	bar, _ := newTestBar()
	bar.SetUsername("alice")
	for _, width := range []int{10, 40, 80, 200} {
		view := bar.View(width, "/b/abc")
		if got := ansi.StringWidth(view); got != width {
			t.Errorf("View(%d) width = %d", width, got)
		}
	}

	view := ansi.Strip(bar.View(120, "/b/abc"))
	for _, want := range []string{"Trellminal", "alice", "/b/abc"} {
		if !strings.Contains(view, want) {
			t.Errorf("view %q missing %q", view, want)
		}
	}

	bar.SetUsername("")
	if view := ansi.Strip(bar.View(120, "")); !strings.Contains(view, "not signed in") {
		t.Errorf("view %q missing signed-out text", view)
	}
}

func TestCommandModeView(t *testing.T) {
	bar, _ := newTestBar()
	bar.Update(runeKey(':'))
	typeString(t, bar, "he")
	view := ansi.Strip(bar.View(40, "/"))
	if !strings.HasPrefix(view, ":he") {
		t.Errorf("command view = %q, want prefix %q", view, ":he")
	}
	if got := ansi.StringWidth(bar.View(40, "/")); got != 40 {
		t.Errorf("command view width = %d, want 40", got)
	}
}

func TestViewInGermanKeepsAppName(t *testing.T) {
	catalog, err := locale.New("de")
	if err != nil {
		t.Fatalf("locale.New: %v", err)
	}
	fake := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	bar := New(tui.DefaultTheme, tui.DefaultKeyMap, catalog, fake)
	bar.SetUsername("alice")

	view := ansi.Strip(bar.View(120, "/b/abc"))
	if !strings.Contains(view, "Trellminal") {
		t.Errorf("view %q missing the application name", view)
	}
	if strings.Contains(view, "AppName") {
		t.Errorf("view %q shows a raw message ID", view)
	}
}
