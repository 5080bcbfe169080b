// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles centralizes the lipgloss styling for the terminal UI.
// A Theme is derived from the persisted dark-mode preference and handed to
// every view that renders text.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme bundles the pre-built styles for one color scheme.
type Theme struct {
	Dark         bool
	ColorProfile termenv.Profile
	Palette      Palette

	// Conversation rendering
	UserLabel    lipgloss.Style
	BotLabel     lipgloss.Style
	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	Notice       lipgloss.Style
	StreamCursor lipgloss.Style

	// Chrome
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	StatusKey lipgloss.Style
	Help      lipgloss.Style
	InputBox  lipgloss.Style
	Divider   lipgloss.Style

	// Pickers and options
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	OptionLabel  lipgloss.Style
	OptionValue  lipgloss.Style
	ErrorText    lipgloss.Style
}

// NewTheme builds a Theme for the given mode. The terminal's detected color
// profile caps what lipgloss will emit; the palette itself follows the
// preference, not the detected background.
func NewTheme(dark bool) *Theme {
	p := Light
	if dark {
		p = Dark
	}

	t := &Theme{
		Dark:         dark,
		ColorProfile: termenv.ColorProfile(),
		Palette:      p,
	}

	t.UserLabel = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	t.BotLabel = lipgloss.NewStyle().Foreground(p.Muted).Bold(true)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserFg).
		Background(p.UserBg).
		Padding(0, 1)
	t.BotBubble = lipgloss.NewStyle().
		Foreground(p.BotFg).
		Background(p.BotBg).
		Padding(0, 1)

	t.Notice = lipgloss.NewStyle().Foreground(p.NoticeFg).Italic(true)
	t.StreamCursor = lipgloss.NewStyle().Foreground(p.Accent).Blink(true)

	t.Title = lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Padding(0, 1)
	t.StatusBar = lipgloss.NewStyle().
		Foreground(p.StatusFg).
		Background(p.StatusBg).
		Padding(0, 1)
	t.StatusKey = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	t.Help = lipgloss.NewStyle().Foreground(p.Muted)

	t.InputBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)
	t.Divider = lipgloss.NewStyle().Foreground(p.Border)

	t.ListItem = lipgloss.NewStyle().Foreground(p.Foreground).PaddingLeft(2)
	t.ListSelected = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		PaddingLeft(0)
	t.OptionLabel = lipgloss.NewStyle().Foreground(p.Foreground).Bold(true)
	t.OptionValue = lipgloss.NewStyle().Foreground(p.Muted)
	t.ErrorText = lipgloss.NewStyle().Foreground(p.ErrorFg).Bold(true)

	return t
}
