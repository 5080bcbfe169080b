// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines all Bubble Tea message types used by the chat interface.
// Messages are organized into the following categories:
//   - Streaming: Stream lifecycle events delivered by the SessionRunner
//   - Models: Model listing and switching
//   - Chats: Stored chat listing, creation, and loading
//   - Settings: Summarization settings round trips
//   - History: Prompt history recall
//   - Config: Hot reload of the on-disk configuration
//
// All streaming messages carry the session ID that produced them; the Update
// loop drops events whose session is no longer the active one, so a cancelled
// stream can never mutate the log after its replacement started.
package chat

import (
	"github.com/jeranaias/notepad-tui/internal/api"
	"github.com/jeranaias/notepad-tui/internal/config"
)

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamOpenedMsg signals that the push connection for a session is
// established and fragments may follow.
type StreamOpenedMsg struct {
	SessionID   uint64
	TargetIndex int
}

// StreamFragmentMsg delivers one decoded text fragment.
type StreamFragmentMsg struct {
	SessionID   uint64
	TargetIndex int
	Fragment    string
}

// StreamDoneMsg signals that the server sent its completion sentinel.
type StreamDoneMsg struct {
	SessionID   uint64
	TargetIndex int
}

// StreamServerErrorMsg signals a server-decoded error payload. The partial
// reply stands; Raw carries the full payload for diagnostics.
type StreamServerErrorMsg struct {
	SessionID   uint64
	TargetIndex int
	Raw         string
}

// StreamTransportErrorMsg signals a connection-level failure distinct from a
// server-decoded error: the stream dropped, timed out, or never opened.
type StreamTransportErrorMsg struct {
	SessionID   uint64
	TargetIndex int
	Err         error
}

// =============================================================================
// MODEL MESSAGES
// =============================================================================

// ModelsLoadedMsg delivers the list of available models.
type ModelsLoadedMsg struct {
	Models []string
	Err    error
}

// ModelSetMsg confirms a model switch.
type ModelSetMsg struct {
	Model string
	Err   error
}

// =============================================================================
// CHAT DIRECTORY MESSAGES
// =============================================================================

// ChatsLoadedMsg delivers the identifiers of stored chats.
type ChatsLoadedMsg struct {
	Chats []string
	Err   error
}

// ChatCreatedMsg confirms creation of a stored chat.
type ChatCreatedMsg struct {
	ChatID string
	Err    error
}

// ChatLoadedMsg delivers a stored chat's messages for log replacement.
type ChatLoadedMsg struct {
	ChatID   string
	Messages []api.ChatMessage
	Err      error
}

// =============================================================================
// SETTINGS MESSAGES
// =============================================================================

// SettingsLoadedMsg delivers the backend's summarization settings.
type SettingsLoadedMsg struct {
	Settings *api.Settings
	Err      error
}

// SettingsUpdatedMsg confirms a settings mutation. The options view refetches
// on success so the display always reflects server state.
type SettingsUpdatedMsg struct {
	Err error
}

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers recent prompts for up-arrow recall.
type HistoryLoadedMsg struct {
	Prompts []string
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg reports that the config file changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// statusClearMsg clears a transient status bar message.
type statusClearMsg struct {
	seq int
}
