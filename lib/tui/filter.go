// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"
)

// FilterModel is the "/" filter bar shown above a list.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true while the filter has keyboard focus.
	Active bool
}

// FilteredItem is a list item that survived filtering, with the rune
// positions in its title that matched.
type FilteredItem struct {
	Item      ListItem
	Score     int
	Positions []int
}

// ApplyFuzzy filters items against the query, best matches first.
// Items with equal scores keep their original order. An empty query
// returns every item unscored.
func (filter *FilterModel) ApplyFuzzy(items []ListItem, slab *util.Slab) []FilteredItem {
	results := make([]FilteredItem, 0, len(items))
	if filter.Input == "" {
		for _, item := range items {
			results = append(results, FilteredItem{Item: item})
		}
		return results
	}

	pattern := []rune(filter.Input)
	for _, item := range items {
		match := FuzzyMatch(item.Title, pattern, slab)
		if match.Score == 0 {
			// Fall back to the secondary text so a board can be found
			// by its workspace name, but without title highlighting.
			if detail := FuzzyMatch(item.Detail, pattern, slab); detail.Score > 0 {
				results = append(results, FilteredItem{Item: item, Score: detail.Score})
			}
			continue
		}
		results = append(results, FilteredItem{Item: item, Score: match.Score, Positions: match.Positions})
	}
	slices.SortStableFunc(results, func(a, b FilteredItem) int {
		return b.Score - a.Score
	})
	return results
}

// HandleRune appends a typed character.
func (filter *FilterModel) HandleRune(character rune) {
	filter.Input += string(character)
}

// HandleBackspace removes the last character. Returns false when the
// input was already empty.
func (filter *FilterModel) HandleBackspace() bool {
	if filter.Input == "" {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar: the input with a cursor while active,
// a faint reminder while inactive with text, and nothing otherwise.
func (filter *FilterModel) View(theme Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}
	if filter.Active {
		cursor := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true).Render("▎")
		return lipgloss.NewStyle().Foreground(theme.NormalText).Width(width).Render(" / " + filter.Input + cursor)
	}
	return lipgloss.NewStyle().Foreground(theme.FaintText).Width(width).Render(" filter: " + filter.Input)
}
