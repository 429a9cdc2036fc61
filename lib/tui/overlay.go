// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay content placed at (anchorX, anchorY). Truncation is
// ANSI-aware so styling on both sides of the overlay survives.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		// Build: prefix + reset + overlay + reset + suffix.
		var result strings.Builder

		// Prefix: everything before the overlay anchor.
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			result.WriteString(prefix)
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		// Suffix: everything after the overlay region.
		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			suffix := ansi.TruncateLeft(viewLine, suffixStart, "")
			result.WriteString(suffix)
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// PadOverlayLine pads styled content to the dialog's full width with
// background-colored spaces: one column of margin on the left, the
// remainder on the right.
func PadOverlayLine(styledContent string, innerWidth, totalWidth int, backgroundStyle lipgloss.Style) string {
	contentWidth := ansi.StringWidth(styledContent)
	rightPad := max(innerWidth-contentWidth, 0)
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}

// ExtractExcerpt returns the first maxLines non-blank lines of a card
// description, each truncated to maxWidth.
func ExtractExcerpt(body string, maxWidth, maxLines int) []string {
	bodyLines := strings.Split(body, "\n")
	var result []string
	for _, line := range bodyLines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if ansi.StringWidth(trimmed) > maxWidth {
			trimmed = ansi.Truncate(trimmed, maxWidth-1, "…")
		}
		result = append(result, trimmed)
		if len(result) >= maxLines {
			break
		}
	}
	return result
}

// Dialog is a bordered box drawn over a page: a title, body lines,
// and an optional footer hint.
type Dialog struct {
	Title  string
	Lines  []string
	Footer string
}

// Render returns the dialog's lines, each exactly width columns wide.
// Body lines longer than the inner width are wrapped.
func (dialog Dialog) Render(theme Theme, width int) []string {
	innerWidth := max(width-4, 1)
	background := lipgloss.NewStyle().Background(theme.DialogBackground)
	body := background.Foreground(theme.DialogForeground)
	border := background.Foreground(theme.BorderColor)

	line := func(content string) string {
		return border.Render("│") + PadOverlayLine(content, innerWidth, width-2, background) + border.Render("│")
	}

	title := ansi.Truncate(" "+dialog.Title+" ", max(width-4, 0), "…")
	top := border.Render("╭─") + background.Foreground(theme.Accent).Bold(true).Render(title) +
		border.Render(strings.Repeat("─", max(width-3-ansi.StringWidth(title), 0))+"╮")

	lines := []string{top}
	for _, text := range dialog.Lines {
		for _, wrapped := range strings.Split(ansi.Wrap(text, innerWidth, " /&?="), "\n") {
			lines = append(lines, line(body.Render(wrapped)))
		}
	}
	if dialog.Footer != "" {
		lines = append(lines, line(""))
		lines = append(lines, line(background.Foreground(theme.HelpText).Render(ansi.Truncate(dialog.Footer, innerWidth, "…"))))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat("─", max(width-2, 0))+"╯"))
	return lines
}

// CenterOverlay splices overlay lines into the middle of a view that
// occupies a width by height area.
func CenterOverlay(view string, overlayLines []string, width, height int) string {
	if len(overlayLines) == 0 {
		return view
	}
	viewLines := strings.Split(view, "\n")
	for len(viewLines) < height {
		viewLines = append(viewLines, "")
	}
	for index, viewLine := range viewLines {
		if gap := width - ansi.StringWidth(viewLine); gap > 0 {
			viewLines[index] = viewLine + strings.Repeat(" ", gap)
		}
	}
	overlayWidth := ansi.StringWidth(overlayLines[0])
	anchorX := max((width-overlayWidth)/2, 0)
	anchorY := max((height-len(overlayLines))/2, 0)
	return SpliceOverlay(strings.Join(viewLines, "\n"), overlayLines, anchorX, anchorY)
}
