// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/trello"
	"github.com/trellminal/trellminal/lib/tui"
)

// Workspaces lists the organizations of the active member.
type Workspaces struct {
	deps     Deps
	list     *tui.List
	location string
}

func NewWorkspaces(deps Deps) *Workspaces {
	deps.setDefaults()
	return &Workspaces{deps: deps, list: tui.NewList(deps.Theme, deps.Keys)}
}

func (page *Workspaces) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	organizations, err := resources.API.MemberOrganizations().Send(ctx)
	if err != nil {
		return router.MountOperation{}, err
	}
	page.location = params.Get(router.ParamLocation)
	page.fill(organizations)
	return router.MountOperation{}, nil
}

func (page *Workspaces) fill(organizations []trello.Organization) {
	items := make([]tui.ListItem, 0, len(organizations))
	for _, organization := range organizations {
		items = append(items, tui.ListItem{
			ID:     organization.ID,
			Title:  organization.Title(),
			Detail: organization.Name,
		})
	}
	page.list.SetItems(items)
}

func (page *Workspaces) Unmount(ctx context.Context, resources router.Resources) {}

func (page *Workspaces) Draw(area router.Area) string {
	width, height := inner(area)
	body := faint(page.deps.Theme, page.deps.Catalog.T("WorkspacesSelect")) + "\n" + page.list.View(width, max(height-1, 1))
	return tui.Panel(page.deps.Theme, page.deps.Catalog.T("WorkspacesTitle"), body, area.Width, area.Height)
}

func (page *Workspaces) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	switch msg := msg.(type) {
	case loadedMsg[[]trello.Organization]:
		if msg.Location != page.location {
			return router.Operation{}
		}
		if msg.Err != nil {
			page.deps.Logger.Warn("reloading workspaces", "error", msg.Err)
			return router.Consume()
		}
		page.fill(msg.Value)
		return router.Consume()

	case tea.KeyMsg:
		if !page.list.Filtering() && key.Matches(msg, page.deps.Keys.Refresh) {
			reload(ctx, resources, page.location, resources.API.MemberOrganizations())
			return router.Consume()
		}
		chosen, operation := listKey(page.list, page.deps.Keys, msg)
		if chosen != nil {
			return router.Navigate(BoardsLocation(chosen.ID))
		}
		return operation
	}
	return router.Operation{}
}
