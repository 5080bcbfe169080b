// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTE
// =============================================================================

// Palette holds the raw colors a Theme is built from. Two palettes exist,
// selected by the persisted dark-mode preference rather than by terminal
// background detection, so the UI matches the stored setting exactly.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	UserFg     lipgloss.Color
	UserBg     lipgloss.Color
	BotFg      lipgloss.Color
	BotBg      lipgloss.Color
	NoticeFg   lipgloss.Color
	ErrorFg    lipgloss.Color
	Border     lipgloss.Color
	StatusBg   lipgloss.Color
	StatusFg   lipgloss.Color
}

// Light is the default palette.
var Light = Palette{
	Background: lipgloss.Color("#FFFFFF"),
	Foreground: lipgloss.Color("#1F2937"),
	Muted:      lipgloss.Color("#6B7280"),
	Accent:     lipgloss.Color("#2563EB"),
	UserFg:     lipgloss.Color("#FFFFFF"),
	UserBg:     lipgloss.Color("#2563EB"),
	BotFg:      lipgloss.Color("#1F2937"),
	BotBg:      lipgloss.Color("#E5E7EB"),
	NoticeFg:   lipgloss.Color("#B45309"),
	ErrorFg:    lipgloss.Color("#DC2626"),
	Border:     lipgloss.Color("#D1D5DB"),
	StatusBg:   lipgloss.Color("#E5E7EB"),
	StatusFg:   lipgloss.Color("#374151"),
}

// Dark mirrors Light for dark backgrounds.
var Dark = Palette{
	Background: lipgloss.Color("#111827"),
	Foreground: lipgloss.Color("#E5E7EB"),
	Muted:      lipgloss.Color("#9CA3AF"),
	Accent:     lipgloss.Color("#60A5FA"),
	UserFg:     lipgloss.Color("#F9FAFB"),
	UserBg:     lipgloss.Color("#1D4ED8"),
	BotFg:      lipgloss.Color("#E5E7EB"),
	BotBg:      lipgloss.Color("#1F2937"),
	NoticeFg:   lipgloss.Color("#FBBF24"),
	ErrorFg:    lipgloss.Color("#F87171"),
	Border:     lipgloss.Color("#374151"),
	StatusBg:   lipgloss.Color("#1F2937"),
	StatusFg:   lipgloss.Color("#D1D5DB"),
}
