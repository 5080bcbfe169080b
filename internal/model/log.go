// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation log.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyInput is returned when a user turn would be empty after trimming.
	ErrEmptyInput = errors.New("submission is empty")

	// ErrStreamingTurnExists is returned when a placeholder is appended while
	// another turn is still streaming. This indicates a caller bug: the
	// session controller must cancel the previous stream first.
	ErrStreamingTurnExists = errors.New("a streaming turn already exists")

	// ErrBadIndex is returned when an index is out of range or the turn at
	// that index is not streaming.
	ErrBadIndex = errors.New("no streaming turn at index")
)

// =============================================================================
// CONVERSATION LOG
// =============================================================================

// Log holds an ordered sequence of turns. Insertion order is chronological
// order is display order. The log is append-only while a session is open,
// except for the single streaming turn whose text is mutated in place.
//
// Log is not safe for concurrent use; the Bubble Tea event loop serializes
// all mutations by event order.
type Log struct {
	// Identity of the loaded server-side chat, empty for an unsaved session.
	ChatID string

	turns     []*Turn
	updatedAt time.Time
}

// NewLog creates an empty conversation log.
func NewLog() *Log {
	return &Log{
		turns:     make([]*Turn, 0),
		updatedAt: time.Now(),
	}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// AppendUserTurn appends a completed user turn. The text must already be
// trimmed; an empty text is rejected.
func (l *Log) AppendUserTurn(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	l.turns = append(l.turns, NewUserTurn(text))
	l.updatedAt = time.Now()
	return nil
}

// AppendPlaceholderTurn appends an empty streaming assistant turn and
// returns its index. At most one streaming turn may exist at a time.
func (l *Log) AppendPlaceholderTurn() (int, error) {
	if l.StreamingIndex() >= 0 {
		return -1, ErrStreamingTurnExists
	}
	l.turns = append(l.turns, NewPlaceholderTurn())
	l.updatedAt = time.Now()
	return len(l.turns) - 1, nil
}

// AppendFragment concatenates fragment onto the streaming turn at index.
func (l *Log) AppendFragment(index int, fragment string) error {
	if index < 0 || index >= len(l.turns) || !l.turns[index].Streaming {
		return fmt.Errorf("%w: %d", ErrBadIndex, index)
	}
	l.turns[index].appendFragment(fragment)
	l.updatedAt = time.Now()
	return nil
}

// FinalizeTurn marks the turn at index as no longer streaming. Finalizing
// an already-finalized turn is a no-op, not an error.
func (l *Log) FinalizeTurn(index int) {
	if index < 0 || index >= len(l.turns) {
		return
	}
	l.turns[index].finalize()
	l.updatedAt = time.Now()
}

// AppendSystemNotice appends a completed assistant-role turn carrying a
// human-readable failure message.
func (l *Log) AppendSystemNotice(text string) {
	l.turns = append(l.turns, NewNoticeTurn(text))
	l.updatedAt = time.Now()
}

// ReplaceAll atomically swaps the entire turn sequence. Used when switching
// to a different stored chat.
func (l *Log) ReplaceAll(turns []*Turn) {
	replacement := make([]*Turn, len(turns))
	copy(replacement, turns)
	l.turns = replacement
	l.updatedAt = time.Now()
}

// Clear removes all turns.
func (l *Log) Clear() {
	l.turns = make([]*Turn, 0)
	l.updatedAt = time.Now()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Len returns the number of turns.
func (l *Log) Len() int {
	return len(l.turns)
}

// IsEmpty returns true if there are no turns.
func (l *Log) IsEmpty() bool {
	return len(l.turns) == 0
}

// Turn returns the turn at index, or nil if out of range.
func (l *Log) Turn(index int) *Turn {
	if index < 0 || index >= len(l.turns) {
		return nil
	}
	return l.turns[index]
}

// Turns returns the turn sequence for display.
func (l *Log) Turns() []*Turn {
	return l.turns
}

// LastTurn returns the most recent turn, or nil if empty.
func (l *Log) LastTurn() *Turn {
	if len(l.turns) == 0 {
		return nil
	}
	return l.turns[len(l.turns)-1]
}

// StreamingIndex returns the index of the streaming turn, or -1 if none.
func (l *Log) StreamingIndex() int {
	for i := len(l.turns) - 1; i >= 0; i-- {
		if l.turns[i].Streaming {
			return i
		}
	}
	return -1
}

// UpdatedAt returns the time of the last mutation.
func (l *Log) UpdatedAt() time.Time {
	return l.updatedAt
}
