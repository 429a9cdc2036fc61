// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/store"
	"github.com/trellminal/trellminal/lib/tui"
)

// SwitchAccount lists the stored accounts. Selecting one makes it
// active; "a" adds another account and "d" forgets the highlighted one.
type SwitchAccount struct {
	deps Deps
	list *tui.List
}

func NewSwitchAccount(deps Deps) *SwitchAccount {
	deps.setDefaults()
	return &SwitchAccount{deps: deps, list: tui.NewList(deps.Theme, deps.Keys)}
}

func (page *SwitchAccount) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	page.fill(resources.Store)
	return router.MountOperation{}, nil
}

func (page *SwitchAccount) fill(accounts *store.Store) {
	active, _ := accounts.ActiveAccount()
	var items []tui.ListItem
	for _, account := range accounts.Accounts() {
		item := tui.ListItem{ID: account.ID, Title: account.Username}
		if account.ID == active.ID {
			item.Detail = page.deps.Catalog.T("SwitchAccountActive")
		}
		items = append(items, item)
	}
	page.list.SetItems(items)
}

func (page *SwitchAccount) Unmount(ctx context.Context, resources router.Resources) {}

func (page *SwitchAccount) Draw(area router.Area) string {
	width, height := inner(area)
	theme := page.deps.Theme
	footer := faint(theme, page.deps.Catalog.T("SwitchAccountFooter"))
	body := faint(theme, page.deps.Catalog.T("SwitchAccountSelect")) + "\n" +
		page.list.View(width, max(height-3, 1)) + "\n\n" + footer
	return tui.Panel(theme, page.deps.Catalog.T("SwitchAccountTitle"), body, area.Width, area.Height)
}

func (page *SwitchAccount) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return router.Operation{}
	}
	if !page.list.Filtering() {
		switch keyMsg.String() {
		case "a":
			return router.Navigate(LocationAuthenticate)
		case "d":
			page.remove(resources)
			return router.Consume()
		}
	}

	chosen, operation := listKey(page.list, page.deps.Keys, keyMsg)
	if chosen == nil {
		return operation
	}
	if err := resources.Store.SetActiveAccount(chosen.ID); err != nil {
		page.deps.Logger.Warn("switching account", "account", chosen.Title, "error", err)
		page.fill(resources.Store)
		return router.Consume()
	}
	resources.API.Deauthorize()
	return router.Navigate(LocationHome)
}

func (page *SwitchAccount) remove(resources router.Resources) {
	item, ok := page.list.Selected()
	if !ok {
		return
	}
	active, _ := resources.Store.ActiveAccount()
	if err := resources.Store.RemoveAccount(item.ID); err != nil {
		page.deps.Logger.Warn("removing account", "account", item.Title, "error", err)
	}
	if item.ID == active.ID {
		resources.API.Deauthorize()
	}
	page.fill(resources.Store)
}
