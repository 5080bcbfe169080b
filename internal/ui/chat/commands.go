// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea commands wrapping the backend's REST
// endpoints. Each command performs one request and delivers its outcome as a
// message; failures ride in the message rather than panicking the program.
package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/notepad-tui/internal/api"
	"github.com/jeranaias/notepad-tui/internal/history"
)

// restTimeout bounds each collaborator call issued from the Update loop.
const restTimeout = 30 * time.Second

func listModelsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		models, err := client.ListModels(ctx)
		return ModelsLoadedMsg{Models: models, Err: err}
	}
}

func setModelCmd(client *api.Client, model string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		err := client.SetModel(ctx, model)
		return ModelSetMsg{Model: model, Err: err}
	}
}

func listChatsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		chats, err := client.ListChats(ctx)
		return ChatsLoadedMsg{Chats: chats, Err: err}
	}
}

func createChatCmd(client *api.Client, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		id, err := client.CreateChat(ctx, name)
		return ChatCreatedMsg{ChatID: id, Err: err}
	}
}

func loadChatCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		messages, err := client.LoadChat(ctx, id)
		return ChatLoadedMsg{ChatID: id, Messages: messages, Err: err}
	}
}

func getSettingsCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		settings, err := client.GetSettings(ctx)
		return SettingsLoadedMsg{Settings: settings, Err: err}
	}
}

func setSummarizationCmd(client *api.Client, enabled bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		return SettingsUpdatedMsg{Err: client.SetSummarization(ctx, enabled)}
	}
}

func disableSummarizationCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		return SettingsUpdatedMsg{Err: client.DisableSummarization(ctx)}
	}
}

func setSummarizationModelCmd(client *api.Client, model string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		return SettingsUpdatedMsg{Err: client.SetSummarizationModel(ctx, model)}
	}
}

func setMaxMessagesCmd(client *api.Client, n int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), restTimeout)
		defer cancel()
		return SettingsUpdatedMsg{Err: client.SetMaxMessages(ctx, n)}
	}
}

func loadHistoryCmd(store *history.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		prompts, err := store.Recent(50)
		if err != nil {
			return HistoryLoadedMsg{}
		}
		return HistoryLoadedMsg{Prompts: prompts}
	}
}

// clearStatusCmd clears a transient status detail after a short delay. The
// sequence number keeps an older timer from wiping a newer message.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
