// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the submit path and prompt history recall.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/notepad-tui/internal/ui/components"
	"github.com/jeranaias/notepad-tui/internal/util"
)

// =============================================================================
// SUBMIT PATH
// =============================================================================

// submit sends the input field's content as a new user turn and starts the
// streaming session for the reply. Empty submissions are a local no-op: no
// network call, no log mutation, no error shown.
func (m *Model) submit() tea.Cmd {
	text := util.NormalizeInput(m.input.Value())
	if text == "" {
		return nil
	}

	// A new submission interrupts an in-flight one. The previous partial
	// reply stands, finalized, with no notice turn.
	m.interrupt()

	if err := m.log.AppendUserTurn(text); err != nil {
		return nil
	}
	idx, err := m.log.AppendPlaceholderTurn()
	if err != nil {
		// Cannot happen after interrupt cleared the streaming turn; keep
		// the user turn and stay ready rather than crash.
		return m.setStatus(components.StatusError, err.Error())
	}

	session := m.runner.NewSession(idx)
	m.activeSessionID = session.ID

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMgr.set(cancel)
	go m.runner.Run(ctx, session, text)

	m.input.Reset()
	m.draft = ""
	m.recallIdx = -1
	// Resubmitting the same prompt back to back gets one recall entry.
	if len(m.recall) == 0 || m.recall[0] != text {
		m.recall = append([]string{text}, m.recall...)
	}
	m.status = components.StatusStreaming
	m.statusDetail = ""
	m.refreshViewport(true)

	if m.history == nil {
		return nil
	}
	return func() tea.Msg {
		m.history.Record(text)
		return nil
	}
}

// interrupt closes the active stream, if any, and finalizes its placeholder.
// Cancellation is a normal interruption: no notice turn is appended.
func (m *Model) interrupt() {
	if m.activeSessionID == 0 {
		return
	}
	m.cancelMgr.cancel()
	m.activeSessionID = 0
	if idx := m.log.StreamingIndex(); idx >= 0 {
		m.log.FinalizeTurn(idx)
	}
	m.status = components.StatusReady
}

// =============================================================================
// PROMPT HISTORY RECALL
// =============================================================================

// recallPrev replaces the input with the next-older recorded prompt,
// stashing the current draft on first use.
func (m *Model) recallPrev() {
	if len(m.recall) == 0 || m.recallIdx+1 >= len(m.recall) {
		return
	}
	if m.recallIdx == -1 {
		m.draft = m.input.Value()
	}
	m.recallIdx++
	m.input.SetValue(m.recall[m.recallIdx])
	m.input.CursorEnd()
}

// recallNext walks back toward the stashed draft.
func (m *Model) recallNext() {
	if m.recallIdx == -1 {
		return
	}
	m.recallIdx--
	if m.recallIdx == -1 {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.recall[m.recallIdx])
	}
	m.input.CursorEnd()
}
