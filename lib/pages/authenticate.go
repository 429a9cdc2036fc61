// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/tui"
)

// Authenticate lets the user pick a login method.
type Authenticate struct {
	deps Deps
	menu tui.Menu
}

func NewAuthenticate(deps Deps) *Authenticate {
	deps.setDefaults()
	return &Authenticate{
		deps: deps,
		menu: tui.Menu{Items: []tui.MenuItem{
			{Label: deps.Catalog.T("AuthenticateBrowser"), Shortcut: tui.Shortcut("a")},
			{Label: deps.Catalog.T("AuthenticateManual"), Shortcut: tui.Shortcut("m")},
		}},
	}
}

func (page *Authenticate) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	page.menu.Reset()
	return router.MountOperation{}, nil
}

func (page *Authenticate) Unmount(ctx context.Context, resources router.Resources) {}

func (page *Authenticate) Draw(area router.Area) string {
	width, height := inner(area)
	theme := page.deps.Theme
	body := titled(theme, page.deps.Catalog.T("AppName"),
		tui.Wrap(theme, page.deps.Catalog.T("AuthenticatePrompt"), width)+"\n\n"+page.menu.View(theme, width), width)
	return tui.Panel(theme, page.deps.Catalog.T("AuthenticateTitle"), tui.Center(body, width, height), area.Width, area.Height)
}

func (page *Authenticate) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return router.Operation{}
	}
	activated, handled := page.menu.Update(keyMsg, page.deps.Keys)
	switch activated {
	case 0:
		return router.Navigate(LocationBrowserAuth)
	case 1:
		return router.Navigate(LocationManualAuth)
	}
	if handled {
		return router.Consume()
	}
	return router.Operation{}
}
