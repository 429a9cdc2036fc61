// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package pages

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/trellminal/trellminal/lib/router"
	"github.com/trellminal/trellminal/lib/tui"
)

// listKey applies a key to a selection list. While the filter bar has
// focus every key belongs to it; otherwise Select picks the item under
// the cursor. chosen is set only when an item was picked.
func listKey(list *tui.List, keys tui.KeyMap, msg tea.KeyMsg) (chosen *tui.ListItem, operation router.Operation) {
	if list.Filtering() {
		list.Update(msg)
		return nil, router.Consume()
	}
	if key.Matches(msg, keys.Select) {
		if item, ok := list.Selected(); ok {
			return &item, router.Operation{}
		}
		return nil, router.Consume()
	}
	if list.Update(msg) {
		return nil, router.Consume()
	}
	return nil, router.Operation{}
}
