// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Plain interactive chat loop for the notepad CLI.
//
// This is the fallback surface for terminals where the full-screen TUI is
// unwanted (--plain) or impossible (no TTY handling for alternate screens).
// It reads prompts with line editing and history, streams replies token by
// token to stdout, and exposes the backend's directory operations as slash
// commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/notepad-tui/internal/api"
	"github.com/jeranaias/notepad-tui/internal/history"
	"github.com/jeranaias/notepad-tui/internal/util"
)

// transportNotice matches the TUI's trailing turn for dropped streams.
const transportNotice = "An error occurred while streaming."

// =============================================================================
// CHAT LOOP
// =============================================================================

// ChatLoop is the interactive plain-mode session.
type ChatLoop struct {
	client *api.Client
	line   *liner.State
	store  *history.Store // nil when history is disabled
}

// NewChatLoop creates the loop and seeds line-editing history from the
// store, oldest first so recall order matches the TUI.
func NewChatLoop(client *api.Client, store *history.Store) *ChatLoop {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	if store != nil {
		if prompts, err := store.Recent(history.MaxEntries); err == nil {
			for i := len(prompts) - 1; i >= 0; i-- {
				line.AppendHistory(prompts[i])
			}
		}
	}

	return &ChatLoop{client: client, line: line, store: store}
}

// Close restores the terminal.
func (c *ChatLoop) Close() {
	c.line.Close()
}

// Run processes prompts until EOF or /quit.
func (c *ChatLoop) Run(ctx context.Context) error {
	fmt.Println("LLM Notepad. /help for commands, ctrl+d to exit.")

	for {
		input, err := c.line.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			return err
		}

		text := util.NormalizeInput(input)
		if text == "" {
			continue
		}
		c.line.AppendHistory(text)

		if strings.HasPrefix(text, "/") {
			if quit := c.runCommand(ctx, text); quit {
				return nil
			}
			continue
		}

		if c.store != nil {
			c.store.Record(text)
		}
		c.stream(ctx, text)
	}
}

// stream sends one message and echoes the reply as it arrives.
func (c *ChatLoop) stream(ctx context.Context, text string) {
	var serverErr string

	err := c.client.StreamChat(ctx, text, func(chunk api.Chunk) {
		switch chunk.Kind {
		case api.ChunkFragment:
			fmt.Print(chunk.Text)
		case api.ChunkError:
			serverErr = chunk.Raw
		}
	})
	fmt.Println()

	if err != nil {
		fmt.Println(transportNotice)
		fmt.Fprintln(os.Stderr, api.UserMessage(err))
		return
	}
	if serverErr != "" {
		fmt.Fprintln(os.Stderr, serverErr)
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// runCommand handles a slash command; returns true when the loop should end.
func (c *ChatLoop) runCommand(ctx context.Context, text string) bool {
	fields := strings.Fields(text)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Println(`Commands:
  /models           list available models
  /model NAME       switch the active model
  /chats            list stored chats
  /load ID          load a stored chat
  /save NAME        save the current chat under NAME
  /quit             exit`)

	case "/models":
		models, err := c.client.ListModels(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, api.UserMessage(err))
			return false
		}
		for _, m := range models {
			fmt.Println(m)
		}

	case "/model":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "usage: /model NAME")
			return false
		}
		if err := c.client.SetModel(ctx, args[0]); err != nil {
			fmt.Fprintln(os.Stderr, api.UserMessage(err))
			return false
		}
		fmt.Println("Model set to", args[0])

	case "/chats":
		chats, err := c.client.ListChats(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, api.UserMessage(err))
			return false
		}
		if len(chats) == 0 {
			fmt.Println("No stored chats.")
		}
		for _, id := range chats {
			fmt.Println(id)
		}

	case "/load":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "usage: /load ID")
			return false
		}
		messages, err := c.client.LoadChat(ctx, args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, api.UserMessage(err))
			return false
		}
		for _, msg := range messages {
			label := "You"
			if msg.Role == "assistant" {
				label = "Assistant"
			}
			fmt.Printf("%s: %s\n", label, msg.Content)
		}

	case "/save":
		if len(args) != 1 {
			fmt.Fprintln(os.Stderr, "usage: /save NAME")
			return false
		}
		id, err := c.client.CreateChat(ctx, args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, api.UserMessage(err))
			return false
		}
		fmt.Println("Saved as", id)

	default:
		fmt.Fprintln(os.Stderr, "Unknown command. /help lists commands.")
	}
	return false
}
