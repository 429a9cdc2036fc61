// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/tui"
)

const (
	firstLoadQuit = iota
	firstLoadAuthenticate
)

// FirstLoad welcomes a user who has no account yet.
type FirstLoad struct {
	deps Deps
	menu tui.Menu
}

func NewFirstLoad(deps Deps) *FirstLoad {
	deps.setDefaults()
	return &FirstLoad{
		deps: deps,
		menu: tui.Menu{Horizontal: true, Items: []tui.MenuItem{
			firstLoadQuit:         {Label: deps.Catalog.T("FirstLoadQuit"), Shortcut: tui.Shortcut("q")},
			firstLoadAuthenticate: {Label: deps.Catalog.T("FirstLoadAuthenticate"), Shortcut: tui.Shortcut("a")},
		}},
	}
}

func (page *FirstLoad) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	page.menu.Select(firstLoadAuthenticate)
	return router.MountOperation{}, nil
}

func (page *FirstLoad) Unmount(ctx context.Context, resources router.Resources) {}

func (page *FirstLoad) Draw(area router.Area) string {
	width, height := inner(area)
	theme := page.deps.Theme
	body := tui.Wrap(theme, page.deps.Catalog.T("FirstLoadBody"), min(width, 72)) + "\n\n" +
		page.menu.View(theme, min(width, 72))
	return tui.Panel(theme, page.deps.Catalog.T("FirstLoadTitle"), tui.Center(body, width, height), area.Width, area.Height)
}

func (page *FirstLoad) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return router.Operation{}
	}
	activated, handled := page.menu.Update(keyMsg, page.deps.Keys)
	switch activated {
	case firstLoadQuit:
		return router.Exit()
	case firstLoadAuthenticate:
		return router.Navigate(LocationAuthenticate)
	}
	if handled {
		return router.Consume()
	}
	return router.Operation{}
}
