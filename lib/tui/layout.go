// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FitView clips or pads view to exactly height lines, each truncated
// to width columns. Short lines are not padded.
func FitView(view string, width, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for index, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[index] = ansi.Truncate(line, width, "")
		}
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Panel draws body inside a rounded border with title set into the top
// edge. The result is width by height; body is clipped to the inside.
func Panel(theme Theme, title, body string, width, height int) string {
	if width < 4 || height < 2 {
		return FitView(body, max(width, 0), max(height, 0))
	}
	border := lipgloss.NewStyle().Foreground(theme.BorderColor)
	innerWidth := width - 2
	innerHeight := height - 2

	heading := ""
	if title != "" {
		heading = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(ansi.Truncate(" "+title+" ", max(innerWidth-1, 0), "…"))
	}
	top := border.Render("╭─") + heading +
		border.Render(strings.Repeat("─", max(innerWidth-1-ansi.StringWidth(heading), 0))+"╮")

	lines := []string{top}
	for _, line := range strings.Split(FitView(body, innerWidth, innerHeight), "\n") {
		gap := max(innerWidth-ansi.StringWidth(line), 0)
		lines = append(lines, border.Render("│")+line+strings.Repeat(" ", gap)+border.Render("│"))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(lines, "\n")
}

// Center places block in the middle of a width by height area.
func Center(block string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}

// Wrap word-wraps text to width and centers every line.
func Wrap(theme Theme, text string, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(max(width, 1)).
		Align(lipgloss.Center).
		Render(text)
}
