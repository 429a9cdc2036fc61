// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/tui"
)

// Home decides where a session starts: the welcome screen before any
// account exists, the account picker when none is active, and the
// workspace list otherwise. It never stays mounted.
type Home struct {
	deps Deps
}

func NewHome(deps Deps) *Home {
	deps.setDefaults()
	return &Home{deps: deps}
}

func (page *Home) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	if len(resources.Store.Accounts()) == 0 {
		return router.Redirect(LocationFirstLoad), nil
	}
	account, ok := resources.Store.ActiveAccount()
	if !ok {
		return router.Redirect(LocationSwitchAccount), nil
	}
	resources.API.Authorize(account.Token)
	return router.Redirect(LocationWorkspaces), nil
}

func (page *Home) Unmount(ctx context.Context, resources router.Resources) {}

func (page *Home) Draw(area router.Area) string {
	return tui.Center(faint(page.deps.Theme, page.deps.Catalog.T("Loading")), area.Width, area.Height)
}

func (page *Home) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	if _, ok := msg.(tea.KeyMsg); ok {
		return router.Navigate(LocationWorkspaces)
	}
	return router.Operation{}
}
