// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/tui"
)

// recoveryMenu is the back / home / quit choice shared by the screens
// a failed navigation lands on.
func recoveryMenu(deps Deps) tui.Menu {
	return tui.Menu{Items: []tui.MenuItem{
		{Label: deps.Catalog.T("RecoverBack"), Shortcut: tui.Shortcut("b", "B")},
		{Label: deps.Catalog.T("RecoverHome"), Shortcut: tui.Shortcut("h", "H")},
		{Label: deps.Catalog.T("RecoverQuit"), Shortcut: tui.Shortcut("q", "Q")},
	}}
}

func recoveryOperation(menu *tui.Menu, keys tui.KeyMap, msg tea.Msg) router.Operation {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return router.Operation{}
	}
	activated, handled := menu.Update(keyMsg, keys)
	switch activated {
	case 0:
		return router.NavigateBackward()
	case 1:
		return router.Navigate(LocationHome)
	case 2:
		return router.Exit()
	}
	if handled {
		return router.Consume()
	}
	return router.Operation{}
}

// Error shows the description of a failed navigation.
type Error struct {
	deps        Deps
	menu        tui.Menu
	description string
}

func NewError(deps Deps) *Error {
	deps.setDefaults()
	return &Error{deps: deps, menu: recoveryMenu(deps)}
}

// Description returns the failure being shown.
func (page *Error) Description() string {
	return page.description
}

func (page *Error) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	page.description = params.Unescaped("description")
	page.menu.Reset()
	return router.MountOperation{}, nil
}

func (page *Error) Unmount(ctx context.Context, resources router.Resources) {}

func (page *Error) Draw(area router.Area) string {
	width, height := inner(area)
	theme := page.deps.Theme
	description := lipgloss.NewStyle().Foreground(theme.ErrorForeground).Width(max(min(width, 72), 1)).
		Align(lipgloss.Center).Render(page.description)
	body := joinLines(
		tui.Wrap(theme, page.deps.Catalog.T("ErrorBody"), width),
		lipgloss.PlaceHorizontal(width, lipgloss.Center, description),
		page.menu.View(theme, width),
	)
	return tui.Panel(theme, page.deps.Catalog.T("ErrorTitle"), tui.Center(body, width, height), area.Width, area.Height)
}

func (page *Error) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	return recoveryOperation(&page.menu, page.deps.Keys, msg)
}

// NotFound is shown for locations no route matches.
type NotFound struct {
	deps Deps
	menu tui.Menu
}

func NewNotFound(deps Deps) *NotFound {
	deps.setDefaults()
	return &NotFound{deps: deps, menu: recoveryMenu(deps)}
}

func (page *NotFound) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	page.menu.Reset()
	return router.MountOperation{}, nil
}

func (page *NotFound) Unmount(ctx context.Context, resources router.Resources) {}

func (page *NotFound) Draw(area router.Area) string {
	width, height := inner(area)
	theme := page.deps.Theme
	body := joinLines(tui.Wrap(theme, page.deps.Catalog.T("NotFoundBody"), width), page.menu.View(theme, width))
	return tui.Panel(theme, page.deps.Catalog.T("NotFoundTitle"), tui.Center(body, width, height), area.Width, area.Height)
}

func (page *NotFound) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	return recoveryOperation(&page.menu, page.deps.Keys, msg)
}
