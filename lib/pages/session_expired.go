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
	expiredAuthenticate = iota
	expiredSwitch
	expiredRetry
	expiredQuit
)

// SessionExpired is shown when Trello rejects the active account's
// token. It carries the location the user was heading to so it can be
// retried after signing in again.
type SessionExpired struct {
	deps Deps
	menu tui.Menu

	destination string
	username    string
}

func NewSessionExpired(deps Deps) *SessionExpired {
	deps.setDefaults()
	return &SessionExpired{deps: deps}
}

// Destination returns the location that failed.
func (page *SessionExpired) Destination() string {
	return page.destination
}

func (page *SessionExpired) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	page.destination = params.Unescaped("destination")
	page.username = ""
	if account, ok := resources.Store.ActiveAccount(); ok {
		page.username = account.Username
	}
	resources.API.Deauthorize()

	catalog := page.deps.Catalog
	page.menu = tui.Menu{Items: []tui.MenuItem{
		expiredAuthenticate: {Label: catalog.T("SessionExpiredAuthenticate"), Shortcut: tui.Shortcut("a")},
		expiredSwitch:       {Label: catalog.T("SessionExpiredSwitch"), Shortcut: tui.Shortcut("w")},
		expiredRetry: {
			Label:    catalog.T("SessionExpiredRetry", map[string]any{"Destination": page.destination}),
			Shortcut: tui.Shortcut("r", "R"),
		},
		expiredQuit: {Label: catalog.T("SessionExpiredQuit"), Shortcut: tui.Shortcut("q", "Q")},
	}}
	return router.MountOperation{}, nil
}

func (page *SessionExpired) Unmount(ctx context.Context, resources router.Resources) {}

func (page *SessionExpired) Draw(area router.Area) string {
	width, height := inner(area)
	theme := page.deps.Theme
	catalog := page.deps.Catalog
	message := catalog.T("SessionExpiredBody", map[string]any{"Username": page.username})
	body := joinLines(tui.Wrap(theme, message, width), page.menu.View(theme, width))
	return tui.Panel(theme, catalog.T("SessionExpiredTitle"), tui.Center(body, width, height), area.Width, area.Height)
}

func (page *SessionExpired) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return router.Operation{}
	}
	activated, handled := page.menu.Update(keyMsg, page.deps.Keys)
	switch activated {
	case expiredAuthenticate:
		return router.Navigate(LocationAuthenticate)
	case expiredSwitch:
		return router.Navigate(LocationSwitchAccount)
	case expiredRetry:
		if account, ok := resources.Store.ActiveAccount(); ok {
			resources.API.Authorize(account.Token)
		}
		return router.Navigate(page.destination)
	case expiredQuit:
		return router.Exit()
	}
	if handled {
		return router.Consume()
	}
	return router.Operation{}
}
