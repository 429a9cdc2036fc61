// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/trello"
	"github.com/trellminal/trellminal/lib/tui"
)

// Card shows one card: its name, labels, due date, and the markdown
// description in a scrollable viewport. "o" opens the card on
// trello.com.
type Card struct {
	deps Deps

	card     trello.Card
	viewport viewport.Model

	// renderedWidth is the width the description was last rendered
	// at; the markdown is re-rendered when the terminal is resized.
	renderedWidth int
}

func NewCard(deps Deps) *Card {
	deps.setDefaults()
	return &Card{deps: deps, viewport: viewport.New(0, 0)}
}

func (page *Card) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	card, err := resources.API.Card(params.Unescaped("card")).Send(ctx)
	if err != nil {
		return router.MountOperation{}, err
	}
	page.card = card
	page.renderedWidth = 0
	page.viewport.GotoTop()
	return router.MountOperation{}, nil
}

func (page *Card) Unmount(ctx context.Context, resources router.Resources) {}

func (page *Card) header(width int) string {
	theme := page.deps.Theme
	lines := []string{
		lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).Width(max(width, 1)).Render(page.card.Name),
	}

	var labels []string
	for _, label := range page.card.Labels {
		name := label.Name
		if name == "" {
			name = label.Color
		}
		labels = append(labels, lipgloss.NewStyle().Foreground(theme.LabelColor(label.Color)).Render("● "+name))
	}
	if len(labels) > 0 {
		lines = append(lines, strings.Join(labels, "  "))
	}

	if page.card.Due != "" {
		due := page.card.Due
		if parsed, err := time.Parse(time.RFC3339, due); err == nil {
			due = parsed.Local().Format("Mon Jan 2 2006 15:04")
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.WarningForeground).
			Render(page.deps.Catalog.T("CardDue", map[string]any{"Due": due})))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.BorderColor).Render(strings.Repeat("─", max(width, 0))))
	return strings.Join(lines, "\n")
}

func (page *Card) Draw(area router.Area) string {
	width, height := inner(area)
	header := page.header(width)
	width = max(width-1, 1)
	page.viewport.Width = width
	page.viewport.Height = max(height-lipgloss.Height(header), 1)

	if page.renderedWidth != width {
		description := tui.RenderMarkdown(page.card.Description, page.deps.Theme, width)
		if strings.TrimSpace(page.card.Description) == "" {
			description = faint(page.deps.Theme, page.deps.Catalog.T("CardNoDescription"))
		}
		page.viewport.SetContent(description)
		page.renderedWidth = width
	}

	scroll := tui.Scroll{
		Total:   page.viewport.TotalLineCount(),
		Visible: page.viewport.Height,
		Offset:  page.viewport.YOffset,
	}
	body := page.viewport.View()
	if !scroll.Fits() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, tui.Scrollbar(page.deps.Theme, scroll, page.viewport.Height, true))
	}
	return tui.Panel(page.deps.Theme, page.deps.Catalog.T("CardTitle"), header+"\n"+body, area.Width, area.Height)
}

func (page *Card) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return router.Operation{}
	}
	switch keyMsg.String() {
	case "o":
		if page.deps.OpenBrowser != nil && page.card.URL != "" {
			if err := page.deps.OpenBrowser(page.card.URL); err != nil {
				page.deps.Logger.Warn("opening card in browser", "error", err)
			}
		}
		return router.Consume()
	case "g", "home":
		page.viewport.GotoTop()
		return router.Consume()
	case "G", "end":
		page.viewport.GotoBottom()
		return router.Consume()
	}

	scroll := page.viewport.KeyMap
	if !key.Matches(keyMsg, scroll.Up, scroll.Down, scroll.PageUp, scroll.PageDown, scroll.HalfPageUp, scroll.HalfPageDown) {
		return router.Operation{}
	}
	page.viewport, _ = page.viewport.Update(keyMsg)
	return router.Consume()
}
