// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestInitialInputHeightInSmallTerminal(t *testing.T) {
	m, _ := newTestHarness(t, streamHandler([]string{"[DONE]"}, false))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	if got := m.resizer.Size(); got != inputStartRows {
		t.Errorf("Input region = %d rows after resize, want %d", got, inputStartRows)
	}
}

func TestChatViewFitsWindowHeight(t *testing.T) {
	m, _ := newTestHarness(t, streamHandler([]string{"[DONE]"}, false))

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 24 {
		t.Errorf("Chat view renders %d rows in a 24-row window", len(lines))
	}

	// The drag handle row must land on the rendered divider.
	if row := m.dividerRow(); !strings.Contains(lines[row], "─") {
		t.Errorf("Row %d is not the divider: %q", row, lines[row])
	}
}
