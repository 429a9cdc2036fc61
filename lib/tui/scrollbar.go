// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Scroll is a window of Visible rows starting at Offset over Total
// rows of content.
type Scroll struct {
	Total   int
	Visible int
	Offset  int
}

// Fits reports whether all content is visible at once.
func (scroll Scroll) Fits() bool {
	return scroll.Total <= scroll.Visible || scroll.Total <= 0
}

// thumb places the thumb in a track of height rows.
func (scroll Scroll) thumb(height int) (start, size int) {
	if scroll.Fits() {
		return 0, height
	}
	size = max(height*scroll.Visible/scroll.Total, 1)
	scrollable, track := scroll.Total-scroll.Visible, height-size
	if track > 0 {
		start = max(scroll.Offset, 0) * track / scrollable
	}
	return min(start, track), size
}

// Scrollbar renders a one-column track of height rows. The thumb
// covers the whole track when the content fits, and is drawn in the
// accent color when focused.
func Scrollbar(theme Theme, scroll Scroll, height int, focused bool) string {
	if height <= 0 {
		return ""
	}
	thumbStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	if focused {
		thumbStyle = thumbStyle.Foreground(theme.Accent)
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)

	start, size := scroll.thumb(height)
	rows := make([]string, height)
	for row := range rows {
		if row >= start && row < start+size {
			rows[row] = thumbStyle.Render("┃")
		} else {
			rows[row] = trackStyle.Render("│")
		}
	}
	return strings.Join(rows, "\n")
}
