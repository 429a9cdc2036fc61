// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"
)

// ListItem is one selectable row.
type ListItem struct {
	// ID is handed back to the page on selection.
	ID string
	// Title is the primary text; the filter matches against it.
	Title string
	// Detail is faint secondary text shown after the title.
	Detail string
}

// List is a scrollable, filterable selection list.
type List struct {
	theme Theme
	keys  KeyMap

	items   []ListItem
	visible []FilteredItem
	cursor  int
	offset  int
	height  int

	filter FilterModel
	slab   *util.Slab
}

// NewList creates an empty list.
func NewList(theme Theme, keys KeyMap) *List {
	return &List{theme: theme, keys: keys, slab: NewSlab()}
}

// SetItems replaces the items and resets the cursor and filter.
func (list *List) SetItems(items []ListItem) {
	list.items = items
	list.filter.Clear()
	list.cursor = 0
	list.offset = 0
	list.refilter()
}

// Len returns the number of visible (filtered) items.
func (list *List) Len() int {
	return len(list.visible)
}

// Filtering reports whether the filter bar has keyboard focus. Pages
// must not interpret printable keys while it does.
func (list *List) Filtering() bool {
	return list.filter.Active
}

// Selected returns the item under the cursor.
func (list *List) Selected() (ListItem, bool) {
	if list.cursor < 0 || list.cursor >= len(list.visible) {
		return ListItem{}, false
	}
	return list.visible[list.cursor].Item, true
}

func (list *List) refilter() {
	list.visible = list.filter.ApplyFuzzy(list.items, list.slab)
	list.cursor = min(list.cursor, max(len(list.visible)-1, 0))
}

// Update handles movement and filter keys. It returns true when the
// key was used.
func (list *List) Update(msg tea.KeyMsg) bool {
	if list.filter.Active {
		return list.updateFilter(msg)
	}

	switch {
	case key.Matches(msg, list.keys.Up):
		list.move(-1)
	case key.Matches(msg, list.keys.Down):
		list.move(1)
	case key.Matches(msg, list.keys.PageUp):
		list.move(-max(list.height/2, 1))
	case key.Matches(msg, list.keys.PageDown):
		list.move(max(list.height/2, 1))
	case key.Matches(msg, list.keys.Home):
		list.move(-len(list.visible))
	case key.Matches(msg, list.keys.End):
		list.move(len(list.visible))
	case key.Matches(msg, list.keys.FilterActivate):
		list.filter.Active = true
	case key.Matches(msg, list.keys.FilterClear) && list.filter.Input != "":
		list.filter.Clear()
		list.refilter()
	default:
		return false
	}
	return true
}

func (list *List) updateFilter(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		list.filter.Clear()
	case tea.KeyEnter:
		list.filter.Active = false
		return true
	case tea.KeyUp:
		list.move(-1)
		return true
	case tea.KeyDown:
		list.move(1)
		return true
	case tea.KeyBackspace:
		if !list.filter.HandleBackspace() {
			list.filter.Active = false
		}
	case tea.KeySpace:
		list.filter.HandleRune(' ')
	case tea.KeyRunes:
		for _, character := range msg.Runes {
			list.filter.HandleRune(character)
		}
	default:
		return true
	}
	list.cursor = 0
	list.offset = 0
	list.refilter()
	return true
}

func (list *List) move(delta int) {
	if len(list.visible) == 0 {
		return
	}
	list.cursor = max(0, min(list.cursor+delta, len(list.visible)-1))
}

// View renders the list into a width by height block, with the filter
// bar (when shown) on the first line and a scrollbar on the right.
func (list *List) View(width, height int) string {
	var lines []string
	if bar := list.filter.View(list.theme, width); bar != "" {
		lines = append(lines, bar)
		height--
	}
	list.height = max(height, 1)

	if len(list.visible) == 0 {
		empty := lipgloss.NewStyle().Foreground(list.theme.FaintText).Render("  nothing here")
		if list.filter.Input != "" {
			empty = lipgloss.NewStyle().Foreground(list.theme.FaintText).Render("  no matches for " + list.filter.Input)
		}
		return strings.Join(append(lines, empty), "\n")
	}

	// Keep the cursor inside the window.
	if list.cursor < list.offset {
		list.offset = list.cursor
	}
	if list.cursor >= list.offset+list.height {
		list.offset = list.cursor - list.height + 1
	}
	list.offset = max(0, min(list.offset, len(list.visible)-list.height))

	rowWidth := max(width-1, 1)
	end := min(list.offset+list.height, len(list.visible))
	rows := make([]string, 0, list.height)
	for index := list.offset; index < end; index++ {
		rows = append(rows, list.renderRow(list.visible[index], index == list.cursor, rowWidth))
	}
	for len(rows) < list.height {
		rows = append(rows, strings.Repeat(" ", rowWidth))
	}

	scrollbar := Scrollbar(list.theme, Scroll{Total: len(list.visible), Visible: list.height, Offset: list.offset}, list.height, true)
	lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(rows, "\n"), scrollbar))
	return strings.Join(lines, "\n")
}

func (list *List) renderRow(row FilteredItem, selected bool, width int) string {
	base := lipgloss.NewStyle().Foreground(list.theme.NormalText)
	highlight := base.Background(list.theme.SearchHighlightBackground)
	detailStyle := lipgloss.NewStyle().Foreground(list.theme.FaintText)
	marker := "  "
	if selected {
		base = lipgloss.NewStyle().Background(list.theme.SelectedBackground).Foreground(list.theme.SelectedForeground)
		highlight = base.Bold(true).Underline(true)
		detailStyle = base.Foreground(list.theme.FaintText)
		marker = "▸ "
	}

	title := highlightRunes(row.Item.Title, row.Positions, base, highlight)
	content := base.Render(marker) + title
	if row.Item.Detail != "" {
		content += base.Render("  ") + detailStyle.Render(row.Item.Detail)
	}
	content = ansi.Truncate(content, width, "…")
	if gap := width - ansi.StringWidth(content); gap > 0 {
		content += base.Render(strings.Repeat(" ", gap))
	}
	return content
}

// highlightRunes renders text with the runes at positions drawn in
// highlightStyle. Consecutive runs share one Render call.
func highlightRunes(text string, positions []int, baseStyle, highlightStyle lipgloss.Style) string {
	if len(positions) == 0 {
		return baseStyle.Render(text)
	}
	matched := make(map[int]bool, len(positions))
	for _, position := range positions {
		matched[position] = true
	}

	runes := []rune(text)
	var result strings.Builder
	start := 0
	for index := 1; index <= len(runes); index++ {
		if index < len(runes) && matched[index] == matched[start] {
			continue
		}
		chunk := string(runes[start:index])
		if matched[start] {
			result.WriteString(highlightStyle.Render(chunk))
		} else {
			result.WriteString(baseStyle.Render(chunk))
		}
		start = index
	}
	return result.String()
}
