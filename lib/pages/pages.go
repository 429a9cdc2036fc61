// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/trellminal/trellminal/lib/clock"
	"github.com/trellminal/trellminal/lib/locale"
	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/tui"
)

// Locations that pages navigate to by name.
const (
	LocationHome           = "/"
	LocationFirstLoad      = "/first_load"
	LocationAuthenticate   = "/authenticate"
	LocationBrowserAuth    = "/authenticate/browser"
	LocationManualAuth     = "/authenticate/manual"
	LocationSwitchAccount  = "/switch_account"
	LocationWorkspaces     = "/workspaces"
	LocationHelp           = "/help"
	LocationNotFound       = router.DefaultNotFound
	locationVerifyTokenAt  = "/authenticate/token/"
	locationSessionExpired = router.DefaultSessionExpired
	locationError          = router.DefaultError
)

// AuthConfig describes the token requested from Trello and the local
// listener used by the browser login.
type AuthConfig struct {
	AppName    string
	Expiration string
	Scope      string

	// CallbackAddress is the host:port the browser login listens on.
	CallbackAddress string

	// ReplyTimeout bounds how long the listener waits for the UI.
	ReplyTimeout time.Duration
}

// Deps are the collaborators shared by all pages.
type Deps struct {
	Theme   tui.Theme
	Keys    tui.KeyMap
	Catalog *locale.Catalog
	Clock   clock.Clock
	Logger  *slog.Logger
	Auth    AuthConfig

	// OpenBrowser opens a URL in the user's browser. When nil, the
	// browser login shows the link instead.
	OpenBrowser func(url string) error
}

func (deps *Deps) setDefaults() {
	if deps.Catalog == nil {
		deps.Catalog = locale.MustNew()
	}
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Auth.AppName == "" {
		deps.Auth.AppName = "Trellminal"
	}
	if deps.Auth.Expiration == "" {
		deps.Auth.Expiration = "1day"
	}
	if deps.Auth.Scope == "" {
		deps.Auth.Scope = "read"
	}
	if deps.Auth.CallbackAddress == "" {
		deps.Auth.CallbackAddress = "127.0.0.1:9999"
	}
}

// Register inserts every page into table.
func Register(table *router.Table, deps Deps) *router.Table {
	deps.setDefaults()
	return table.
		Insert(LocationHome, NewHome(deps)).
		Insert(LocationFirstLoad, NewFirstLoad(deps)).
		Insert(LocationAuthenticate, NewAuthenticate(deps)).
		Insert(LocationBrowserAuth, NewBrowserAuthenticate(deps)).
		Insert(LocationManualAuth, NewManualAuthenticate(deps)).
		Insert(locationVerifyTokenAt+":token", NewVerifyToken(deps)).
		Insert(LocationSwitchAccount, NewSwitchAccount(deps)).
		Insert(LocationWorkspaces, NewWorkspaces(deps)).
		Insert("/w/:w/boards", NewBoards(deps)).
		Insert("/b/:board", NewBoard(deps)).
		Insert("/c/:card", NewCard(deps)).
		Insert(LocationHelp, NewHelp(deps)).
		Insert(locationSessionExpired+"/:destination", NewSessionExpired(deps)).
		Insert(locationError+"/:description", NewError(deps)).
		Insert(LocationNotFound, NewNotFound(deps))
}

// Location builders for the dynamic routes.

// VerifyTokenLocation returns the location that verifies token and
// stores the account it belongs to.
func VerifyTokenLocation(token string) string {
	return locationVerifyTokenAt + router.EscapeSegment(token)
}

// BoardsLocation returns the board list of a workspace.
func BoardsLocation(workspaceID string) string {
	return "/w/" + router.EscapeSegment(workspaceID) + "/boards"
}

// BoardLocation returns the location of a board.
func BoardLocation(boardID string) string {
	return "/b/" + router.EscapeSegment(boardID)
}

// CardLocation returns the location of a card.
func CardLocation(cardID string) string {
	return "/c/" + router.EscapeSegment(cardID)
}

// titled stacks an accent heading, a blank line, and body.
func titled(theme tui.Theme, heading, body string, width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(heading)) + "\n\n" + body
}

// faint renders text in the faint color.
func faint(theme tui.Theme, text string) string {
	return lipgloss.NewStyle().Foreground(theme.FaintText).Render(text)
}

// inner returns the content size of a Panel drawn in area.
func inner(area router.Area) (width, height int) {
	return max(area.Width-2, 0), max(area.Height-2, 0)
}

// joinLines joins non-empty blocks with a blank line between them.
func joinLines(blocks ...string) string {
	kept := blocks[:0:0]
	for _, block := range blocks {
		if block != "" {
			kept = append(kept, block)
		}
	}
	return strings.Join(kept, "\n\n")
}
