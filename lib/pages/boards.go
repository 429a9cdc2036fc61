// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/trello"
	"github.com/trellminal/trellminal/lib/tui"
)

// Boards lists the open boards of one workspace.
type Boards struct {
	deps Deps
	list *tui.List

	location    string
	workspaceID string
	title       string
}

func NewBoards(deps Deps) *Boards {
	deps.setDefaults()
	return &Boards{deps: deps, list: tui.NewList(deps.Theme, deps.Keys)}
}

func (page *Boards) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	workspaceID := params.Unescaped("w")

	var (
		wait            sync.WaitGroup
		organization    trello.Organization
		boards          []trello.Board
		organizationErr error
		boardErr        error
	)
	wait.Add(2)
	go func() {
		defer wait.Done()
		organization, organizationErr = resources.API.Organization(workspaceID).Send(ctx)
	}()
	go func() {
		defer wait.Done()
		boards, boardErr = resources.API.OrganizationBoards(workspaceID).Send(ctx)
	}()
	wait.Wait()
	if err := errors.Join(organizationErr, boardErr); err != nil {
		return router.MountOperation{}, err
	}

	page.location = params.Get(router.ParamLocation)
	page.workspaceID = workspaceID
	page.title = organization.Title()
	page.fill(boards)
	return router.MountOperation{}, nil
}

func (page *Boards) fill(boards []trello.Board) {
	items := make([]tui.ListItem, 0, len(boards))
	for _, board := range boards {
		if board.Closed {
			continue
		}
		items = append(items, tui.ListItem{ID: board.ID, Title: board.Name, Detail: board.Description})
	}
	page.list.SetItems(items)
}

func (page *Boards) Unmount(ctx context.Context, resources router.Resources) {}

func (page *Boards) Draw(area router.Area) string {
	width, height := inner(area)
	title := page.deps.Catalog.T("BoardsTitle")
	if page.title != "" {
		title += " · " + page.title
	}
	body := faint(page.deps.Theme, page.deps.Catalog.T("BoardsSelect")) + "\n" + page.list.View(width, max(height-1, 1))
	return tui.Panel(page.deps.Theme, title, body, area.Width, area.Height)
}

func (page *Boards) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	switch msg := msg.(type) {
	case loadedMsg[[]trello.Board]:
		if msg.Location != page.location {
			return router.Operation{}
		}
		if msg.Err != nil {
			page.deps.Logger.Warn("reloading boards", "workspace", page.workspaceID, "error", msg.Err)
			return router.Consume()
		}
		page.fill(msg.Value)
		return router.Consume()

	case tea.KeyMsg:
		if !page.list.Filtering() && key.Matches(msg, page.deps.Keys.Refresh) {
			reload(ctx, resources, page.location, resources.API.OrganizationBoards(page.workspaceID))
			return router.Consume()
		}
		chosen, operation := listKey(page.list, page.deps.Keys, msg)
		if chosen != nil {
			return router.Navigate(BoardLocation(chosen.ID))
		}
		return operation
	}
	return router.Operation{}
}
