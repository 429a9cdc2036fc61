// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/tui"
)

// Help lists the key bindings and status bar commands. Esc or
// backspace returns to the previous page.
type Help struct {
	deps Deps
	help help.Model
}

func NewHelp(deps Deps) *Help {
	deps.setDefaults()
	model := help.New()
	model.ShowAll = true
	model.Styles.FullKey = lipgloss.NewStyle().Foreground(deps.Theme.Accent)
	model.Styles.FullDesc = lipgloss.NewStyle().Foreground(deps.Theme.NormalText)
	model.Styles.FullSeparator = lipgloss.NewStyle().Foreground(deps.Theme.BorderColor)
	return &Help{deps: deps, help: model}
}

func (page *Help) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	return router.MountOperation{}, nil
}

func (page *Help) Unmount(ctx context.Context, resources router.Resources) {}

func (page *Help) Draw(area router.Area) string {
	width, _ := inner(area)
	theme := page.deps.Theme
	catalog := page.deps.Catalog
	heading := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)

	page.help.Width = width
	commands := []string{
		catalog.T("HelpCommandQuit"),
		catalog.T("HelpCommandBack"),
		catalog.T("HelpCommandHelp"),
	}
	body := heading.Render(catalog.T("HelpKeys")) + "\n\n" +
		page.help.View(page.deps.Keys) + "\n\n" +
		heading.Render(catalog.T("HelpCommands")) + "\n\n" +
		lipgloss.NewStyle().Foreground(theme.NormalText).Render(strings.Join(commands, "\n"))
	return tui.Panel(theme, catalog.T("HelpTitle"), body, area.Width, area.Height)
}

func (page *Help) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, page.deps.Keys.FilterClear) {
		return router.NavigateBackward()
	}
	return router.Operation{}
}
