// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/store"
	"github.com/trellminal/trellminal/lib/trello"
	"github.com/trellminal/trellminal/lib/tui"
)

// ErrTokenRejected is the mount failure of VerifyToken when Trello
// does not accept the token. It does not match trello.ErrAuthExpired,
// so a bad token lands on the error screen rather than the
// session-expired one.
var ErrTokenRejected = errors.New("trello rejected the token")

// VerifyToken looks up the member a token belongs to, stores the
// account, makes it active, and continues at Home.
type VerifyToken struct {
	deps Deps
}

func NewVerifyToken(deps Deps) *VerifyToken {
	deps.setDefaults()
	return &VerifyToken{deps: deps}
}

func (page *VerifyToken) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	token := params.Unescaped("token")
	if token == "" {
		return router.MountOperation{}, ErrTokenRejected
	}

	member, err := resources.API.MemberWithToken(token).Send(ctx)
	if errors.Is(err, trello.ErrAuthExpired) {
		return router.MountOperation{}, ErrTokenRejected
	}
	if err != nil {
		return router.MountOperation{}, fmt.Errorf("verifying token: %w", err)
	}

	resources.Store.AddAccount(store.Account{
		ID:       member.ID,
		Username: member.Username,
		Token:    token,
	})
	if err := resources.Store.SetActiveAccount(member.ID); err != nil {
		return router.MountOperation{}, err
	}
	resources.Store.CompleteFirstLoad()
	if err := resources.Store.Save(); err != nil {
		page.deps.Logger.Warn("saving account store", "error", err)
	}
	resources.API.Authorize(token)

	page.deps.Logger.Info("account added", "username", member.Username)
	return router.Redirect(LocationHome), nil
}

func (page *VerifyToken) Unmount(ctx context.Context, resources router.Resources) {}

func (page *VerifyToken) Draw(area router.Area) string {
	return tui.Center(faint(page.deps.Theme, page.deps.Catalog.T("VerifyTitle")), area.Width, area.Height)
}

func (page *VerifyToken) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	return router.Operation{}
}
