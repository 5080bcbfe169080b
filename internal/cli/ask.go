// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command for the notepad CLI.
//
// Sends one message to the backend, collects the streamed reply, and prints
// it. When stdout is a terminal the reply is rendered as markdown; piped
// output stays raw so it composes with other tools.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/notepad-tui/internal/api"
)

// Ask sends question and prints the complete reply. The reply is buffered
// rather than echoed incrementally so markdown rendering sees whole
// constructs.
func Ask(ctx context.Context, client *api.Client, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return errors.New("empty question")
	}

	var reply strings.Builder
	var serverErr string

	err := client.StreamChat(ctx, question, func(chunk api.Chunk) {
		switch chunk.Kind {
		case api.ChunkFragment:
			reply.WriteString(chunk.Text)
		case api.ChunkError:
			serverErr = chunk.Raw
		}
	})
	if err != nil {
		return fmt.Errorf("streaming failed: %s", api.UserMessage(err))
	}
	if serverErr != "" {
		fmt.Fprintln(os.Stderr, serverErr)
	}

	fmt.Print(renderReply(reply.String()))
	return nil
}

// renderReply formats the reply for the current output target.
func renderReply(text string) string {
	if text == "" {
		return ""
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if !IsStdoutTTY() {
		return text
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(TerminalWidth(100)),
	)
	if err != nil {
		return text
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return rendered
}
