// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/trellminal/trellminal/lib/callback"
	"github.com/trellminal/trellminal/lib/event"
	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/trello"
	"github.com/trellminal/trellminal/lib/tui"
)

// relayPage moves the token from the URL fragment, which browsers
// never send, into a query the listener can read.
const relayPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Trellminal</title></head>
<body>
<p>Completing login&hellip;</p>
<script>
var token = new URLSearchParams(window.location.hash.slice(1)).get("token") || "";
var state = new URLSearchParams(window.location.search).get("state") || "";
window.location.replace("/token?token=" + encodeURIComponent(token) + "&state=" + encodeURIComponent(state));
</script>
</body>
</html>
`

const successPage = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Trellminal</title></head>
<body>
<h1>Logged in</h1>
<p>You can close this tab and return to Trellminal.</p>
</body>
</html>
`

const (
	browserAnotherMethod = iota
	browserCancel
)

// BrowserAuthenticate runs the browser login: it starts the callback
// listener, opens Trello's authorization page with the listener as
// return URL, and finishes when the browser delivers a token.
type BrowserAuthenticate struct {
	deps Deps
	menu tui.Menu

	server     *callback.Server
	state      string
	authURL    string
	openFailed bool
}

func NewBrowserAuthenticate(deps Deps) *BrowserAuthenticate {
	deps.setDefaults()
	return &BrowserAuthenticate{
		deps: deps,
		menu: tui.Menu{Items: []tui.MenuItem{
			browserAnotherMethod: {Label: deps.Catalog.T("BrowserAnotherMethod"), Shortcut: tui.Shortcut("1")},
			browserCancel:        {Label: deps.Catalog.T("BrowserCancel"), Shortcut: tui.Shortcut("2")},
		}},
	}
}

func (page *BrowserAuthenticate) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	server, err := callback.Start(callback.Config{
		Address:      page.deps.Auth.CallbackAddress,
		ReplyTimeout: page.deps.Auth.ReplyTimeout,
		Sink:         resources.Events,
		Clock:        page.deps.Clock,
		Logger:       page.deps.Logger,
	})
	if err != nil {
		return router.MountOperation{}, fmt.Errorf("starting login listener: %w", err)
	}

	page.server = server
	page.state = uuid.NewString()
	page.authURL = resources.API.AuthorizeURL(trello.AuthorizeOptions{
		AppName:    page.deps.Auth.AppName,
		Expiration: page.deps.Auth.Expiration,
		Scope:      page.deps.Auth.Scope,
		ReturnURL:  server.URL("/auth") + "?state=" + url.QueryEscape(page.state),
	})
	page.menu.Reset()

	page.openFailed = page.deps.OpenBrowser == nil
	if !page.openFailed {
		if err := page.deps.OpenBrowser(page.authURL); err != nil {
			page.deps.Logger.Info("could not open a browser", "error", err)
			page.openFailed = true
		}
	}
	return router.MountOperation{}, nil
}

func (page *BrowserAuthenticate) Unmount(ctx context.Context, resources router.Resources) {
	if page.server == nil {
		return
	}
	if err := page.server.Close(); err != nil {
		page.deps.Logger.Warn("stopping login listener", "error", err)
	}
	page.server = nil
}

// ListenerAddress returns the address of the running listener, or ""
// when the page is not mounted.
func (page *BrowserAuthenticate) ListenerAddress() string {
	if page.server == nil {
		return ""
	}
	return page.server.Addr()
}

func (page *BrowserAuthenticate) Draw(area router.Area) string {
	width, height := inner(area)
	theme := page.deps.Theme
	catalog := page.deps.Catalog

	waiting := tui.Wrap(theme, catalog.T("BrowserWaiting", map[string]any{"Address": page.ListenerAddress()}), width)
	link := ""
	if page.openFailed {
		link = tui.Wrap(theme, catalog.T("BrowserOpenFailed"), width) + "\n" +
			lipgloss.NewStyle().Foreground(theme.LinkForeground).Width(max(width, 1)).Render(page.authURL)
	}
	body := titled(theme, catalog.T("AppName"), joinLines(waiting, link, page.menu.View(theme, width)), width)
	return tui.Panel(theme, catalog.T("BrowserTitle"), tui.Center(body, width, height), area.Width, area.Height)
}

func (page *BrowserAuthenticate) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	switch msg := msg.(type) {
	case event.RequestMsg:
		return page.handleRequest(msg)
	case tea.KeyMsg:
		activated, handled := page.menu.Update(msg, page.deps.Keys)
		switch activated {
		case browserAnotherMethod:
			return router.Navigate(LocationAuthenticate)
		case browserCancel:
			return router.Exit()
		}
		if handled {
			return router.Consume()
		}
	}
	return router.Operation{}
}

func (page *BrowserAuthenticate) handleRequest(msg event.RequestMsg) router.Operation {
	const html = "text/html; charset=utf-8"
	const text = "text/plain; charset=utf-8"

	requestURL, err := url.Parse(msg.URL)
	if err != nil {
		msg.Respond(http.StatusBadRequest, text, "malformed request\n")
		return router.Consume()
	}

	switch requestURL.Path {
	case "/auth":
		msg.Respond(http.StatusOK, html, relayPage)
		return router.Consume()
	case "/token":
		query := requestURL.Query()
		if query.Get("state") != page.state {
			page.deps.Logger.Warn("login callback with unexpected state")
			msg.Respond(http.StatusBadRequest, text, "login state mismatch, start the login again\n")
			return router.Consume()
		}
		token := query.Get("token")
		if token == "" {
			msg.Respond(http.StatusBadRequest, text, "no token received\n")
			return router.Consume()
		}
		msg.Respond(http.StatusOK, html, successPage)
		return router.Navigate(VerifyTokenLocation(token))
	}
	return router.Operation{}
}
