// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/trello"
	"github.com/trellminal/trellminal/lib/tui"
)

const (
	manualEnterToken = iota
	manualShowLink
	manualAnotherMethod
	manualQuit
)

// ManualAuthenticate shows the authorization link for the user to open
// anywhere and accepts the token Trello displays afterwards.
type ManualAuthenticate struct {
	deps Deps
	menu tui.Menu

	authURL  string
	input    textinput.Model
	entering bool
	showLink bool
}

func NewManualAuthenticate(deps Deps) *ManualAuthenticate {
	deps.setDefaults()
	input := textinput.New()
	input.Placeholder = deps.Catalog.T("ManualTokenPlaceholder")
	input.Prompt = "> "
	input.CharLimit = 128
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '•'

	return &ManualAuthenticate{
		deps:  deps,
		input: input,
		menu: tui.Menu{Items: []tui.MenuItem{
			manualEnterToken:    {Label: deps.Catalog.T("ManualEnterToken"), Shortcut: tui.Shortcut("e")},
			manualShowLink:      {Label: deps.Catalog.T("ManualShowLink"), Shortcut: tui.Shortcut("l")},
			manualAnotherMethod: {Label: deps.Catalog.T("ManualAnotherMethod"), Shortcut: tui.Shortcut("a")},
			manualQuit:          {Label: deps.Catalog.T("ManualQuit"), Shortcut: tui.Shortcut("q")},
		}},
	}
}

func (page *ManualAuthenticate) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	page.authURL = resources.API.AuthorizeURL(trello.AuthorizeOptions{
		AppName:    page.deps.Auth.AppName,
		Expiration: page.deps.Auth.Expiration,
		Scope:      page.deps.Auth.Scope,
	})
	page.menu.Reset()
	page.input.Reset()
	page.input.Blur()
	page.entering = false
	page.showLink = false
	return router.MountOperation{}, nil
}

func (page *ManualAuthenticate) Unmount(ctx context.Context, resources router.Resources) {
	page.input.Reset()
}

func (page *ManualAuthenticate) Draw(area router.Area) string {
	width, height := inner(area)
	theme := page.deps.Theme
	catalog := page.deps.Catalog

	link := lipgloss.NewStyle().Foreground(theme.LinkForeground).Width(max(width, 1)).Render(page.authURL)
	prompt := ""
	if page.entering {
		page.input.Width = max(min(width-4, 64), 8)
		prompt = lipgloss.PlaceHorizontal(width, lipgloss.Center, page.input.View())
	}
	body := titled(theme, catalog.T("AppName"),
		joinLines(tui.Wrap(theme, catalog.T("ManualInstructions"), width), link, prompt, page.menu.View(theme, width)), width)
	view := tui.Panel(theme, catalog.T("ManualTitle"), tui.Center(body, width, height), area.Width, area.Height)

	if page.showLink {
		dialog := tui.Dialog{
			Title:  catalog.T("ManualLinkTitle"),
			Lines:  []string{page.authURL},
			Footer: catalog.T("ManualLinkFooter"),
		}
		view = tui.CenterOverlay(view, dialog.Render(theme, max(min(area.Width-4, 80), 10)), area.Width, area.Height)
	}
	return view
}

func (page *ManualAuthenticate) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return router.Operation{}
	}

	if page.showLink {
		if keyMsg.String() == "k" || key.Matches(keyMsg, page.deps.Keys.Select, page.deps.Keys.FilterClear) {
			page.showLink = false
		}
		return router.Consume()
	}

	if page.entering {
		switch keyMsg.Type {
		case tea.KeyEsc:
			page.entering = false
			page.input.Blur()
			page.input.Reset()
			return router.Consume()
		case tea.KeyEnter:
			token := strings.TrimSpace(page.input.Value())
			if token == "" {
				return router.Consume()
			}
			page.entering = false
			page.input.Blur()
			page.input.Reset()
			return router.Navigate(VerifyTokenLocation(token))
		}
		page.input, _ = page.input.Update(keyMsg)
		return router.Consume()
	}

	activated, handled := page.menu.Update(keyMsg, page.deps.Keys)
	switch activated {
	case manualEnterToken:
		page.entering = true
		page.input.Focus()
		return router.Consume()
	case manualShowLink:
		page.showLink = true
		return router.Consume()
	case manualAnotherMethod:
		return router.Navigate(LocationAuthenticate)
	case manualQuit:
		return router.Exit()
	}
	if handled {
		return router.Consume()
	}
	return router.Operation{}
}
