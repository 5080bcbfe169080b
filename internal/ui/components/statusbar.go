// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/notepad-tui/internal/ui/styles"
	"github.com/jeranaias/notepad-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Status is the coarse application state shown in the bottom bar.
type Status int

const (
	StatusReady Status = iota
	StatusStreaming
	StatusLoading
	StatusError
)

// String returns the display string for the status.
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusStreaming:
		return "Streaming..."
	case StatusLoading:
		return "Loading..."
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// StatusBar renders the one-line bar at the bottom of the chat view.
type StatusBar struct {
	Width  int
	Status Status
	Model  string
	ChatID string
	Detail string
}

// Render produces the bar at the configured width.
func (b StatusBar) Render(theme *styles.Theme) string {
	if b.Width <= 0 {
		return ""
	}

	var left []string
	left = append(left, b.Status.String())
	if b.Model != "" {
		left = append(left, theme.StatusKey.Render("model:")+" "+b.Model)
	}
	if b.ChatID != "" {
		left = append(left, theme.StatusKey.Render("chat:")+" "+util.TruncateWidth(b.ChatID, 16))
	}
	if b.Detail != "" {
		left = append(left, b.Detail)
	}

	content := strings.Join(left, "  |  ")
	content = util.TruncateWidth(content, b.Width-2)

	return theme.StatusBar.Width(b.Width).Render(content)
}

// Divider renders a horizontal rule of the given width.
func Divider(theme *styles.Theme, width int) string {
	if width <= 0 {
		return ""
	}
	return theme.Divider.Render(strings.Repeat(lipgloss.NormalBorder().Top, width))
}
