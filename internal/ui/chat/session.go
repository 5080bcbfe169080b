// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file implements the streaming session runner. One session corresponds
// to one outbound user turn: a push connection is opened, each decoded chunk
// is translated into a Bubble Tea message, and the connection is torn down on
// completion, server error, transport failure, or cancellation. The runner
// never touches the conversation log itself; all mutations happen in the
// Update loop, in delivery order.
package chat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/notepad-tui/internal/api"
)

// =============================================================================
// SESSION
// =============================================================================

// Session identifies one open push connection and the placeholder turn it
// fills. IDs are monotonically increasing; only the most recently created
// session is active, so the Update loop can discard events from a session
// that was cancelled by a later submission.
type Session struct {
	ID          uint64
	TargetIndex int
}

// =============================================================================
// SESSION RUNNER
// =============================================================================

// SessionRunner opens push streams and delivers their events as messages.
// send is typically tea.Program.Send; tests substitute a collector.
type SessionRunner struct {
	client *api.Client
	send   func(tea.Msg)
	nextID atomic.Uint64
}

// NewSessionRunner creates a runner that delivers events through send.
func NewSessionRunner(client *api.Client, send func(tea.Msg)) *SessionRunner {
	return &SessionRunner{client: client, send: send}
}

// NewSession allocates a session for the placeholder at targetIndex.
func (r *SessionRunner) NewSession(targetIndex int) Session {
	return Session{ID: r.nextID.Add(1), TargetIndex: targetIndex}
}

// Run streams the reply for message into session. It blocks until the stream
// ends and is meant to run in its own goroutine; every outcome is reported
// as a message except cancellation, which is a normal interruption and stays
// silent.
func (r *SessionRunner) Run(ctx context.Context, session Session, message string) {
	var opened sync.Once

	err := r.client.StreamChat(ctx, message, func(chunk api.Chunk) {
		opened.Do(func() {
			r.send(StreamOpenedMsg{SessionID: session.ID, TargetIndex: session.TargetIndex})
		})

		switch chunk.Kind {
		case api.ChunkFragment:
			r.send(StreamFragmentMsg{
				SessionID:   session.ID,
				TargetIndex: session.TargetIndex,
				Fragment:    chunk.Text,
			})
		case api.ChunkDone:
			r.send(StreamDoneMsg{SessionID: session.ID, TargetIndex: session.TargetIndex})
		case api.ChunkError:
			r.send(StreamServerErrorMsg{
				SessionID:   session.ID,
				TargetIndex: session.TargetIndex,
				Raw:         chunk.Raw,
			})
		}
	})
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}

	r.send(StreamTransportErrorMsg{
		SessionID:   session.ID,
		TargetIndex: session.TargetIndex,
		Err:         err,
	})
}
