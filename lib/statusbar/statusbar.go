// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

// Package statusbar implements the bottom line of the terminal UI: the
// application title, the current location and account, transient log
// notices, and a vim-style ":" command prompt that sees every key
// before the active page does.
package statusbar

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/trellminal/trellminal/lib/clock"
	"github.com/trellminal/trellminal/lib/locale"
	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/tui"
	"github.com/trellminal/trellminal/lib/version"
)

// HelpLocation is where the help command navigates.
const HelpLocation = "/help"

// NoticeDuration is how long a notice stays visible before the bar
// falls back to the key hint.
const NoticeDuration = 5 * time.Second

// Mode is the status bar's input state.
type Mode int

const (
	// ModeNormal passes keys through, except the command key.
	ModeNormal Mode = iota
	// ModeCommand captures every key into the command buffer.
	ModeCommand
)

func (mode Mode) String() string {
	if mode == ModeCommand {
		return "command"
	}
	return "normal"
}

// Notice is a transient message shown in place of the key hint.
type Notice struct {
	Text    string
	Level   slog.Level
	Expires time.Time
}

// Model is the status bar. It is owned by the render loop and is not
// safe for concurrent use.
type Model struct {
	theme   tui.Theme
	keys    tui.KeyMap
	catalog *locale.Catalog
	clock   clock.Clock

	mode     Mode
	input    textinput.Model
	username string
	notice   *Notice
}

// New creates a status bar in normal mode.
func New(theme tui.Theme, keys tui.KeyMap, catalog *locale.Catalog, clk clock.Clock) *Model {
	input := textinput.New()
	input.Prompt = ":"
	input.PromptStyle = lipgloss.NewStyle().Foreground(theme.CommandForeground).Background(theme.StatusBarBackground)
	input.TextStyle = lipgloss.NewStyle().Foreground(theme.StatusBarForeground).Background(theme.StatusBarBackground)
	input.CharLimit = 64

	return &Model{
		theme:   theme,
		keys:    keys,
		catalog: catalog,
		clock:   clk,
		input:   input,
	}
}

// Mode returns the current input state.
func (model *Model) Mode() Mode {
	return model.mode
}

// Buffer returns the command typed so far.
func (model *Model) Buffer() string {
	return model.input.Value()
}

// SetUsername sets the account name shown on the right. An empty name
// shows the signed-out text.
func (model *Model) SetUsername(username string) {
	model.username = username
}

// Notify shows text until NoticeDuration has passed.
func (model *Model) Notify(text string, level slog.Level) {
	model.notice = &Notice{
		Text:    text,
		Level:   level,
		Expires: model.clock.Now().Add(NoticeDuration),
	}
}

// CurrentNotice returns the notice being shown, if it has not expired.
func (model *Model) CurrentNotice() (Notice, bool) {
	if model.notice == nil {
		return Notice{}, false
	}
	if !model.clock.Now().Before(model.notice.Expires) {
		model.notice = nil
		return Notice{}, false
	}
	return *model.notice, true
}

// Update offers a key to the status bar. consumed reports whether the
// key must not reach the page; operation is what the render loop has
// to carry out.
func (model *Model) Update(msg tea.KeyMsg) (operation router.Operation, consumed bool) {
	if model.mode == ModeNormal {
		if !key.Matches(msg, model.keys.Command) {
			return router.Operation{}, false
		}
		model.mode = ModeCommand
		model.input.Reset()
		model.input.Focus()
		return router.Consume(), true
	}

	switch msg.Type {
	case tea.KeyEsc:
		model.leaveCommandMode()
		return router.Consume(), true
	case tea.KeyEnter:
		command := model.input.Value()
		model.leaveCommandMode()
		return ParseCommand(command), true
	}

	model.input, _ = model.input.Update(msg)
	return router.Consume(), true
}

func (model *Model) leaveCommandMode() {
	model.mode = ModeNormal
	model.input.Blur()
	model.input.Reset()
}

// ParseCommand maps a command line to an operation. Unrecognized
// commands are swallowed without effect.
func ParseCommand(command string) router.Operation {
	switch strings.TrimSpace(command) {
	case "q", "qa", "q!":
		return router.Exit()
	case "back":
		return router.NavigateBackward()
	case "help":
		return router.Navigate(HelpLocation)
	default:
		return router.Consume()
	}
}

// View renders the bar as one line of exactly width columns. location
// is the current history top, or empty while a navigation holds the
// router.
func (model *Model) View(width int, location string) string {
	if width <= 0 {
		return ""
	}
	bar := lipgloss.NewStyle().Background(model.theme.StatusBarBackground).Foreground(model.theme.StatusBarForeground)

	if model.mode == ModeCommand {
		return fit(bar, model.input.View(), width)
	}

	title := bar.Bold(true).Render(" " + model.catalog.T("AppName") + " " + version.Short() + " ")

	middle := bar.Foreground(model.theme.HelpText).Render(model.catalog.T("StatusHint"))
	if notice, ok := model.CurrentNotice(); ok {
		color := model.theme.WarningForeground
		if notice.Level >= slog.LevelError {
			color = model.theme.ErrorForeground
		}
		middle = bar.Foreground(color).Render(notice.Text)
	}

	account := model.username
	if account == "" {
		account = model.catalog.T("StatusSignedOut")
	}
	right := bar.Render(" " + account + " ")
	if location != "" {
		right = bar.Foreground(model.theme.FaintText).Render(location) + bar.Render(" |") + right
	}

	available := width - ansi.StringWidth(title) - ansi.StringWidth(right) - 2
	if available < 8 {
		return fit(bar, title+right, width)
	}
	middle = ansi.Truncate(middle, available, "…")
	gap := width - ansi.StringWidth(title) - ansi.StringWidth(middle) - ansi.StringWidth(right) - 1
	return title + bar.Render(" ") + middle + bar.Render(strings.Repeat(" ", max(gap, 0))) + right
}

// fit truncates or pads content to exactly width columns.
func fit(style lipgloss.Style, content string, width int) string {
	content = ansi.Truncate(content, width, "…")
	if gap := width - ansi.StringWidth(content); gap > 0 {
		content += style.Render(strings.Repeat(" ", gap))
	}
	return content
}
