// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// TURN TYPE
// =============================================================================

// Turn represents a single message in a conversation. A Turn is owned
// exclusively by the Log that holds it; callers receive copies or read
// through accessors.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content. While Streaming is true the text accumulates in streamText
	// and is merged into Text on finalize.
	// PERFORMANCE: strings.Builder avoids quadratic allocations during streaming.
	Text string `json:"text"`

	Streaming  bool            `json:"-"`
	streamText strings.Builder `json:"-"`
}

// NewUserTurn creates a completed user turn.
func NewUserTurn(text string) *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewPlaceholderTurn creates an empty assistant turn in streaming state.
func NewPlaceholderTurn() *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		Streaming: true,
	}
}

// NewAssistantTurn creates a completed assistant turn, used when loading a
// stored chat.
func NewAssistantTurn(text string) *Turn {
	return &Turn{
		ID:        generateTurnID(),
		Role:      RoleAssistant,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewNoticeTurn creates a completed assistant turn carrying a notice message.
func NewNoticeTurn(text string) *Turn {
	return NewAssistantTurn(text)
}

// =============================================================================
// TURN METHODS
// =============================================================================

// appendFragment appends streamed text to a streaming turn.
func (t *Turn) appendFragment(fragment string) {
	if t.Streaming {
		t.streamText.WriteString(fragment)
	}
}

// finalize completes streaming. Finalizing a completed turn is a no-op.
func (t *Turn) finalize() {
	if !t.Streaming {
		return
	}
	t.Text = t.streamText.String()
	t.streamText.Reset()
	t.Streaming = false
}

// DisplayText returns the text to display (streamed-so-far or final).
func (t *Turn) DisplayText() string {
	if t.Streaming {
		return t.streamText.String()
	}
	return t.Text
}

// IsEmpty returns true if the turn has no content yet.
func (t *Turn) IsEmpty() bool {
	return len(t.Text) == 0 && t.streamText.Len() == 0
}

// Preview returns a truncated preview of the turn content.
// Uses rune-based truncation to handle Unicode correctly. Widths too small
// for an ellipsis truncate hard instead.
func (t *Turn) Preview(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	text := t.DisplayText()
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateTurnID creates a unique turn ID.
func generateTurnID() string {
	return "turn_" + uuid.NewString()
}
