// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MenuItem is one button. Shortcut activates it directly; Enter
// activates the highlighted item.
type MenuItem struct {
	Label    string
	Shortcut key.Binding
}

// Menu is a vertical or horizontal row of buttons.
type Menu struct {
	Items      []MenuItem
	Horizontal bool
	selected   int
}

// Selected returns the index of the highlighted item.
func (menu *Menu) Selected() int {
	return menu.selected
}

// Reset highlights the first item.
func (menu *Menu) Reset() {
	menu.selected = 0
}

// Select highlights the item at index, clamped to the item range.
func (menu *Menu) Select(index int) {
	menu.selected = max(0, min(index, len(menu.Items)-1))
}

// Update moves the highlight or activates an item. It returns the
// activated index, or -1 when nothing was activated, and whether the
// key was used.
func (menu *Menu) Update(msg tea.KeyMsg, keys KeyMap) (activated int, handled bool) {
	for index, item := range menu.Items {
		if key.Matches(msg, item.Shortcut) {
			menu.selected = index
			return index, true
		}
	}

	previous, next := keys.Up, keys.Down
	if menu.Horizontal {
		previous, next = keys.Left, keys.Right
	}
	switch {
	case key.Matches(msg, previous):
		menu.selected = max(menu.selected-1, 0)
	case key.Matches(msg, next):
		menu.selected = min(menu.selected+1, max(len(menu.Items)-1, 0))
	case key.Matches(msg, keys.Select):
		if len(menu.Items) == 0 {
			return -1, false
		}
		return menu.selected, true
	default:
		return -1, false
	}
	return -1, true
}

// View renders the buttons with the highlighted one in the accent
// color.
func (menu *Menu) View(theme Theme, width int) string {
	normal := lipgloss.NewStyle().Foreground(theme.NormalText)
	highlighted := lipgloss.NewStyle().Foreground(theme.CommandForeground).Bold(true)

	labels := make([]string, len(menu.Items))
	for index, item := range menu.Items {
		style := normal
		if index == menu.selected {
			style = highlighted
		}
		labels[index] = style.Render(item.Label)
	}

	if menu.Horizontal {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(labels, "   "))
	}
	for index, label := range labels {
		labels[index] = lipgloss.PlaceHorizontal(width, lipgloss.Center, label)
	}
	return strings.Join(labels, "\n")
}

// Shortcut builds a single-key binding for a menu item.
func Shortcut(keys ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...))
}
