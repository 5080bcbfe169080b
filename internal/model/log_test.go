// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"errors"
	"testing"
)

// =============================================================================
// APPEND TESTS
// =============================================================================

func TestAppendUserTurn(t *testing.T) {
	log := NewLog()

	if err := log.AppendUserTurn("hello"); err != nil {
		t.Fatalf("AppendUserTurn returned error: %v", err)
	}

	if log.Len() != 1 {
		t.Fatalf("Expected 1 turn, got %d", log.Len())
	}

	turn := log.Turn(0)
	if turn.Role != RoleUser {
		t.Errorf("Expected role %q, got %q", RoleUser, turn.Role)
	}
	if turn.Text != "hello" {
		t.Errorf("Expected text 'hello', got %q", turn.Text)
	}
	if turn.Streaming {
		t.Error("User turn should not be streaming")
	}
}

func TestAppendUserTurnRejectsEmpty(t *testing.T) {
	log := NewLog()

	for _, input := range []string{"", "   ", "\n\t  "} {
		err := log.AppendUserTurn(input)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("AppendUserTurn(%q) = %v, want ErrEmptyInput", input, err)
		}
	}

	if log.Len() != 0 {
		t.Errorf("Log should be unchanged, got %d turns", log.Len())
	}
}

func TestAppendPlaceholderTurn(t *testing.T) {
	log := NewLog()

	idx, err := log.AppendPlaceholderTurn()
	if err != nil {
		t.Fatalf("AppendPlaceholderTurn returned error: %v", err)
	}
	if idx != 0 {
		t.Errorf("Expected index 0, got %d", idx)
	}

	turn := log.Turn(idx)
	if turn.Role != RoleAssistant {
		t.Errorf("Expected assistant role, got %q", turn.Role)
	}
	if !turn.Streaming {
		t.Error("Placeholder should be streaming")
	}
	if turn.DisplayText() != "" {
		t.Errorf("Placeholder should be empty, got %q", turn.DisplayText())
	}
}

func TestAppendPlaceholderTurnRejectsSecondStream(t *testing.T) {
	log := NewLog()

	if _, err := log.AppendPlaceholderTurn(); err != nil {
		t.Fatalf("First placeholder failed: %v", err)
	}

	_, err := log.AppendPlaceholderTurn()
	if !errors.Is(err, ErrStreamingTurnExists) {
		t.Errorf("Second placeholder = %v, want ErrStreamingTurnExists", err)
	}
	if log.Len() != 1 {
		t.Errorf("Log should still have 1 turn, got %d", log.Len())
	}
}

// =============================================================================
// STREAMING MUTATION TESTS
// =============================================================================

func TestAppendFragmentOrdering(t *testing.T) {
	log := NewLog()
	idx, _ := log.AppendPlaceholderTurn()

	for _, frag := range []string{"Hel", "lo", " world"} {
		if err := log.AppendFragment(idx, frag); err != nil {
			t.Fatalf("AppendFragment(%q) returned error: %v", frag, err)
		}
	}
	log.FinalizeTurn(idx)

	turn := log.Turn(idx)
	if turn.Text != "Hello world" {
		t.Errorf("Expected 'Hello world', got %q", turn.Text)
	}
	if turn.Streaming {
		t.Error("Turn should be finalized")
	}
}

func TestAppendFragmentBadIndex(t *testing.T) {
	log := NewLog()
	log.AppendUserTurn("hi")

	// Out of range
	if err := log.AppendFragment(5, "x"); !errors.Is(err, ErrBadIndex) {
		t.Errorf("Out-of-range index = %v, want ErrBadIndex", err)
	}
	if err := log.AppendFragment(-1, "x"); !errors.Is(err, ErrBadIndex) {
		t.Errorf("Negative index = %v, want ErrBadIndex", err)
	}

	// In range but not streaming
	if err := log.AppendFragment(0, "x"); !errors.Is(err, ErrBadIndex) {
		t.Errorf("Non-streaming turn = %v, want ErrBadIndex", err)
	}
}

func TestFinalizeTurnIdempotent(t *testing.T) {
	log := NewLog()
	idx, _ := log.AppendPlaceholderTurn()
	log.AppendFragment(idx, "partial")

	log.FinalizeTurn(idx)
	turn := log.Turn(idx)
	if turn.Text != "partial" || turn.Streaming {
		t.Fatalf("First finalize: text=%q streaming=%v", turn.Text, turn.Streaming)
	}

	// Second finalize must leave text and streaming flag unchanged.
	log.FinalizeTurn(idx)
	if turn.Text != "partial" {
		t.Errorf("Second finalize changed text to %q", turn.Text)
	}
	if turn.Streaming {
		t.Error("Second finalize re-enabled streaming")
	}

	// Finalizing out of range is a no-op, not a panic.
	log.FinalizeTurn(42)
}

func TestFragmentAfterFinalizeRejected(t *testing.T) {
	log := NewLog()
	idx, _ := log.AppendPlaceholderTurn()
	log.AppendFragment(idx, "Hel")
	log.FinalizeTurn(idx)

	if err := log.AppendFragment(idx, "lo"); !errors.Is(err, ErrBadIndex) {
		t.Errorf("Fragment after finalize = %v, want ErrBadIndex", err)
	}
	if log.Turn(idx).Text != "Hel" {
		t.Errorf("Text changed after rejected fragment: %q", log.Turn(idx).Text)
	}
}

// =============================================================================
// NOTICE AND REPLACE TESTS
// =============================================================================

func TestAppendSystemNotice(t *testing.T) {
	log := NewLog()
	log.AppendSystemNotice("An error occurred while streaming.")

	turn := log.LastTurn()
	if turn == nil {
		t.Fatal("Expected a notice turn")
	}
	if turn.Role != RoleAssistant {
		t.Errorf("Notice role = %q, want assistant", turn.Role)
	}
	if turn.Streaming {
		t.Error("Notice turn should not be streaming")
	}
	if turn.Text != "An error occurred while streaming." {
		t.Errorf("Notice text = %q", turn.Text)
	}
}

func TestReplaceAll(t *testing.T) {
	log := NewLog()
	log.AppendUserTurn("old")

	replacement := []*Turn{
		NewUserTurn("question"),
		NewNoticeTurn("answer"),
	}
	log.ReplaceAll(replacement)

	if log.Len() != 2 {
		t.Fatalf("Expected 2 turns after replace, got %d", log.Len())
	}
	if log.Turn(0).Text != "question" || log.Turn(1).Text != "answer" {
		t.Error("Replaced turns do not match")
	}

	// Mutating the caller's slice must not affect the log.
	replacement[0] = NewUserTurn("mutated")
	if log.Turn(0).Text != "question" {
		t.Error("ReplaceAll aliased the caller's slice")
	}
}

func TestStreamingIndex(t *testing.T) {
	log := NewLog()
	if log.StreamingIndex() != -1 {
		t.Errorf("Empty log StreamingIndex = %d, want -1", log.StreamingIndex())
	}

	log.AppendUserTurn("hi")
	idx, _ := log.AppendPlaceholderTurn()
	if log.StreamingIndex() != idx {
		t.Errorf("StreamingIndex = %d, want %d", log.StreamingIndex(), idx)
	}

	log.FinalizeTurn(idx)
	if log.StreamingIndex() != -1 {
		t.Errorf("StreamingIndex after finalize = %d, want -1", log.StreamingIndex())
	}
}

// =============================================================================
// TURN TESTS
// =============================================================================

func TestTurnPreview(t *testing.T) {
	turn := NewUserTurn("short")
	if got := turn.Preview(50); got != "short" {
		t.Errorf("Preview(short) = %q", got)
	}

	long := NewUserTurn("aaaaaaaaaaaaaaaaaaaa")
	if got := long.Preview(10); got != "aaaaaaa..." {
		t.Errorf("Preview(long) = %q", got)
	}
}

func TestTurnPreviewNarrowWidths(t *testing.T) {
	turn := NewUserTurn("abcdef")
	cases := []struct {
		maxLen int
		want   string
	}{
		{-1, ""},
		{0, ""},
		{1, "a"},
		{2, "ab"},
		{3, "abc"},
		{4, "a..."},
	}
	for _, tc := range cases {
		if got := turn.Preview(tc.maxLen); got != tc.want {
			t.Errorf("Preview(%d) = %q, want %q", tc.maxLen, got, tc.want)
		}
	}
}

func TestDisplayTextWhileStreaming(t *testing.T) {
	log := NewLog()
	idx, _ := log.AppendPlaceholderTurn()
	log.AppendFragment(idx, "par")
	log.AppendFragment(idx, "tial")

	if got := log.Turn(idx).DisplayText(); got != "partial" {
		t.Errorf("DisplayText during stream = %q, want 'partial'", got)
	}
}
