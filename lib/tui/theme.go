// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for trellminal. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Accent is used for titles, the focused scrollbar thumb, and the
	// spinner.
	Accent lipgloss.Color

	// Status bar chrome.
	StatusBarBackground lipgloss.Color
	StatusBarForeground lipgloss.Color
	CommandForeground   lipgloss.Color

	// Transient notices shown in the status bar.
	WarningForeground lipgloss.Color
	ErrorForeground   lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Fuzzy filter match highlighting.
	SearchHighlightBackground lipgloss.Color

	// Links in card descriptions and the login dialog.
	LinkForeground lipgloss.Color

	// Dialog boxes spliced over a page.
	DialogForeground lipgloss.Color
	DialogBackground lipgloss.Color

	// LabelColors maps Trello label color names to terminal colors.
	LabelColors map[string]lipgloss.Color
}

// LabelColor returns the terminal color for a Trello label color name.
// Unknown and empty names return FaintText.
func (theme Theme) LabelColor(name string) lipgloss.Color {
	if color, ok := theme.LabelColors[name]; ok {
		return color
	}
	return theme.FaintText
}

// DefaultTheme is the built-in dark-terminal color scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	Accent: lipgloss.Color("39"), // Trello blue

	StatusBarBackground: lipgloss.Color("24"),
	StatusBarForeground: lipgloss.Color("255"),
	CommandForeground:   lipgloss.Color("220"),

	WarningForeground: lipgloss.Color("220"),
	ErrorForeground:   lipgloss.Color("196"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	SearchHighlightBackground: lipgloss.Color("58"), // dark amber

	LinkForeground: lipgloss.Color("75"),

	DialogForeground: lipgloss.Color("252"),
	DialogBackground: lipgloss.Color("237"),

	LabelColors: map[string]lipgloss.Color{
		"green":  lipgloss.Color("70"),
		"yellow": lipgloss.Color("220"),
		"orange": lipgloss.Color("208"),
		"red":    lipgloss.Color("196"),
		"purple": lipgloss.Color("141"),
		"blue":   lipgloss.Color("33"),
		"sky":    lipgloss.Color("81"),
		"lime":   lipgloss.Color("154"),
		"pink":   lipgloss.Color("213"),
		"black":  lipgloss.Color("240"),
	},
}
