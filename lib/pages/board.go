// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/trello"
	"github.com/trellminal/trellminal/lib/tui"
)

// boardColumnWidth is the preferred width of one list column,
// borders included.
const boardColumnWidth = 30

type boardColumn struct {
	list   trello.List
	cards  []trello.Card
	cursor int
	offset int
}

// boardContent is everything Board fetches for one board.
type boardContent struct {
	board trello.Board
	lists []trello.List
	cards []trello.Card
}

// Board shows the open lists of a board side by side. h/l (or the
// arrows) move between lists, j/k move between cards, and Enter opens
// the highlighted card.
type Board struct {
	deps Deps

	location string
	board    trello.Board
	columns  []boardColumn
	focused  int
	first    int
}

func NewBoard(deps Deps) *Board {
	deps.setDefaults()
	return &Board{deps: deps}
}

func (page *Board) Mount(ctx context.Context, resources router.Resources, params router.Params) (router.MountOperation, error) {
	content, err := fetchBoard(ctx, resources.API, params.Unescaped("board"))
	if err != nil {
		return router.MountOperation{}, err
	}
	page.location = params.Get(router.ParamLocation)
	page.focused = 0
	page.first = 0
	page.fill(content)
	return router.MountOperation{}, nil
}

// fetchBoard requests the board, its lists, and its cards
// concurrently.
func fetchBoard(ctx context.Context, client *trello.Client, boardID string) (boardContent, error) {
	var (
		wait    sync.WaitGroup
		content boardContent
		errs    [3]error
	)
	wait.Add(3)
	go func() {
		defer wait.Done()
		content.board, errs[0] = client.Board(boardID).Send(ctx)
	}()
	go func() {
		defer wait.Done()
		content.lists, errs[1] = client.BoardLists(boardID).Send(ctx)
	}()
	go func() {
		defer wait.Done()
		content.cards, errs[2] = client.BoardCards(boardID).Send(ctx)
	}()
	wait.Wait()
	return content, errors.Join(errs[:]...)
}

func (page *Board) fill(content boardContent) {
	page.board = content.board

	byList := make(map[string][]trello.Card)
	for _, card := range content.cards {
		if !card.Closed {
			byList[card.ListID] = append(byList[card.ListID], card)
		}
	}

	lists := slices.Clone(content.lists)
	slices.SortStableFunc(lists, func(a, b trello.List) int { return cmp.Compare(a.Position, b.Position) })

	previous := make(map[string]int, len(page.columns))
	for _, column := range page.columns {
		previous[column.list.ID] = column.cursor
	}

	page.columns = page.columns[:0]
	for _, list := range lists {
		if list.Closed {
			continue
		}
		cards := byList[list.ID]
		slices.SortStableFunc(cards, func(a, b trello.Card) int { return cmp.Compare(a.Position, b.Position) })
		cursor := min(previous[list.ID], max(len(cards)-1, 0))
		page.columns = append(page.columns, boardColumn{list: list, cards: cards, cursor: cursor})
	}
	page.focused = min(page.focused, max(len(page.columns)-1, 0))
}

func (page *Board) Unmount(ctx context.Context, resources router.Resources) {}

// SelectedCard returns the card under the cursor of the focused list.
func (page *Board) SelectedCard() (trello.Card, bool) {
	if page.focused >= len(page.columns) {
		return trello.Card{}, false
	}
	column := page.columns[page.focused]
	if column.cursor >= len(column.cards) {
		return trello.Card{}, false
	}
	return column.cards[column.cursor], true
}

func (page *Board) Update(ctx context.Context, msg tea.Msg, resources router.Resources) router.Operation {
	switch msg := msg.(type) {
	case loadedMsg[boardContent]:
		if msg.Location != page.location {
			return router.Operation{}
		}
		if msg.Err != nil {
			page.deps.Logger.Warn("reloading board", "board", page.board.ID, "error", msg.Err)
			return router.Consume()
		}
		page.fill(msg.Value)
		return router.Consume()

	case tea.KeyMsg:
		return page.handleKey(ctx, msg, resources)
	}
	return router.Operation{}
}

func (page *Board) handleKey(ctx context.Context, msg tea.KeyMsg, resources router.Resources) router.Operation {
	keys := page.deps.Keys
	switch {
	case key.Matches(msg, keys.Left):
		page.focused = max(page.focused-1, 0)
	case key.Matches(msg, keys.Right):
		page.focused = min(page.focused+1, max(len(page.columns)-1, 0))
	case key.Matches(msg, keys.Up):
		page.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		page.moveCursor(1)
	case key.Matches(msg, keys.Home):
		page.moveCursor(-len(page.focusedCards()))
	case key.Matches(msg, keys.End):
		page.moveCursor(len(page.focusedCards()))
	case key.Matches(msg, keys.Select):
		if card, ok := page.SelectedCard(); ok {
			return router.Navigate(CardLocation(card.ID))
		}
	case key.Matches(msg, keys.Refresh):
		page.reload(ctx, resources)
	default:
		return router.Operation{}
	}
	return router.Consume()
}

func (page *Board) reload(ctx context.Context, resources router.Resources) {
	if resources.Events == nil {
		return
	}
	location, boardID := page.location, page.board.ID
	go func() {
		content, err := fetchBoard(ctx, resources.API, boardID)
		resources.Events.Send(loadedMsg[boardContent]{Location: location, Value: content, Err: err})
	}()
}

func (page *Board) focusedCards() []trello.Card {
	if page.focused >= len(page.columns) {
		return nil
	}
	return page.columns[page.focused].cards
}

// moveCursor moves within the focused list. Moving down past the last
// card wraps to the first.
func (page *Board) moveCursor(delta int) {
	if page.focused >= len(page.columns) {
		return
	}
	column := &page.columns[page.focused]
	if len(column.cards) == 0 {
		return
	}
	next := column.cursor + delta
	switch {
	case delta == 1 && next >= len(column.cards):
		next = 0
	case next < 0:
		next = 0
	case next >= len(column.cards):
		next = len(column.cards) - 1
	}
	column.cursor = next
}

func (page *Board) Draw(area router.Area) string {
	width, height := inner(area)
	theme := page.deps.Theme
	title := page.board.Name
	if title == "" {
		title = page.deps.Catalog.T("BoardTitle")
	}
	if len(page.columns) == 0 {
		body := tui.Center(faint(theme, page.deps.Catalog.T("BoardNoLists")), width, height)
		return tui.Panel(theme, title, body, area.Width, area.Height)
	}

	visible := max(width/boardColumnWidth, 1)
	if page.focused < page.first {
		page.first = page.focused
	}
	if page.focused >= page.first+visible {
		page.first = page.focused - visible + 1
	}
	page.first = max(0, min(page.first, len(page.columns)-visible))

	columnWidth := min(boardColumnWidth, width)
	var rendered []string
	for index := page.first; index < min(page.first+visible, len(page.columns)); index++ {
		rendered = append(rendered, page.drawColumn(&page.columns[index], index == page.focused, columnWidth, height))
	}
	return tui.Panel(theme, title, lipgloss.JoinHorizontal(lipgloss.Top, rendered...), area.Width, area.Height)
}

func (page *Board) drawColumn(column *boardColumn, focused bool, width, height int) string {
	theme := page.deps.Theme
	innerWidth := max(width-2, 1)
	rows := max(height-2, 1)

	if column.cursor < column.offset {
		column.offset = column.cursor
	}
	if column.cursor >= column.offset+rows {
		column.offset = column.cursor - rows + 1
	}

	var lines []string
	if len(column.cards) == 0 {
		lines = append(lines, faint(theme, page.deps.Catalog.T("BoardEmptyList")))
	}
	for index := column.offset; index < min(column.offset+rows, len(column.cards)); index++ {
		lines = append(lines, page.cardLine(column.cards[index], focused && index == column.cursor, innerWidth))
	}

	borderColor := theme.BorderColor
	if focused {
		borderColor = theme.CommandForeground
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(innerWidth).
		Height(rows).
		Render(tui.FitView(strings.Join(lines, "\n"), innerWidth, rows))

	// Set the list name into the top border.
	boxLines := strings.Split(box, "\n")
	name := ansi.Truncate(" "+column.list.Name+" ", max(innerWidth-2, 0), "…")
	headingStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	if focused {
		headingStyle = headingStyle.Foreground(theme.CommandForeground)
	}
	border := lipgloss.NewStyle().Foreground(borderColor)
	boxLines[0] = border.Render("╭─") + headingStyle.Render(name) +
		border.Render(strings.Repeat("─", max(innerWidth-1-ansi.StringWidth(name), 0))+"╮")
	return strings.Join(boxLines, "\n")
}

func (page *Board) cardLine(card trello.Card, selected bool, width int) string {
	theme := page.deps.Theme
	style := lipgloss.NewStyle().Foreground(theme.NormalText)
	marker := "  "
	if selected {
		style = lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground)
		marker = "▸ "
	}
	line := style.Render(marker)
	for _, label := range card.Labels {
		line += lipgloss.NewStyle().Foreground(theme.LabelColor(label.Color)).Inherit(style).Render("●")
	}
	if len(card.Labels) > 0 {
		line += style.Render(" ")
	}
	line += style.Render(card.Name)
	line = ansi.Truncate(line, width, "…")
	if gap := width - ansi.StringWidth(line); gap > 0 && selected {
		line += style.Render(strings.Repeat(" ", gap))
	}
	return line
}
