// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/notepad-tui/internal/model"
	"github.com/jeranaias/notepad-tui/internal/ui/components"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the current screen.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	switch m.mode {
	case viewModels:
		title := "Select model"
		if m.picking == pickSummaryModel {
			title = "Select summarization model"
		}
		return m.pickerView(title, m.models, m.modelCursor)
	case viewChats:
		return m.pickerView("Stored chats", m.chats, m.chatCursor)
	case viewOptions:
		return m.optionsView()
	case viewNameEntry:
		return m.nameEntryView()
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("LLM Notepad"))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(components.Divider(m.theme, m.width))
	b.WriteString("\n")
	b.WriteString(m.theme.InputBox.Width(m.width - 2).Render(m.input.View()))
	b.WriteString("\n")

	bar := components.StatusBar{
		Width:  m.width,
		Status: m.status,
		Model:  m.activeModel,
		ChatID: m.log.ChatID,
		Detail: m.statusDetail,
	}
	b.WriteString(bar.Render(m.theme))

	return b.String()
}

// refreshViewport re-renders the conversation into the viewport.
func (m *Model) refreshViewport(toBottom bool) {
	m.viewport.SetContent(m.renderLog())
	if toBottom {
		m.viewport.GotoBottom()
	}
}

// renderLog renders every turn, oldest first.
func (m *Model) renderLog() string {
	turns := m.log.Turns()
	if len(turns) == 0 {
		return m.theme.Help.Render("No messages yet. Type below and press enter.")
	}

	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	var parts []string
	for _, turn := range turns {
		parts = append(parts, m.renderTurn(turn, width))
	}
	return strings.Join(parts, "\n\n")
}

// renderTurn renders one turn as a labeled block.
func (m *Model) renderTurn(turn *model.Turn, width int) string {
	text := turn.DisplayText()

	if turn.Role == model.RoleUser {
		label := m.theme.UserLabel.Render(turn.Role.DisplayName())
		body := m.theme.UserBubble.MaxWidth(width).Render(text)
		return label + "\n" + body
	}

	label := m.theme.BotLabel.Render(turn.Role.DisplayName())
	if turn.Streaming {
		if text == "" {
			return label + "\n" + m.spinner.View()
		}
		body := components.RenderMessageText(m.theme, text, width)
		return label + "\n" + body + m.theme.StreamCursor.Render("▌")
	}

	body := components.RenderMessageText(m.theme, text, width)
	return label + "\n" + body
}

// =============================================================================
// PICKER AND OPTIONS SCREENS
// =============================================================================

func (m Model) pickerView(title string, items []string, cursor int) string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(m.theme.Help.Render("Nothing available."))
	}
	for i, item := range items {
		if i == cursor {
			b.WriteString(m.theme.ListSelected.Render("> " + item))
		} else {
			b.WriteString(m.theme.ListItem.Render(item))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("up/down move, enter select, esc back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) nameEntryView() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("New chat"))
	b.WriteString("\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.theme.Help.Render("enter create, esc back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) optionsView() string {
	summarize := "off"
	summaryModel := "(none)"
	maxMessages := "-"
	if m.settings != nil {
		if m.settings.SummarizeHistory {
			summarize = "on"
		}
		if m.settings.SummaryModel != "" {
			summaryModel = m.settings.SummaryModel
		}
		maxMessages = strconv.Itoa(m.settings.MaxMessagesToFeed)
	}
	darkMode := "light"
	if m.theme.Dark {
		darkMode = "dark"
	}

	rows := []struct {
		label string
		value string
		hint  string
	}{
		{"Summarize history", summarize, "enter toggles"},
		{"Summarization model", summaryModel, "enter picks"},
		{"Max messages fed", maxMessages, "left/right adjusts"},
		{"Theme", darkMode, "enter toggles"},
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Options"))
	b.WriteString("\n\n")
	for i, row := range rows {
		line := m.theme.OptionLabel.Render(row.label) + ": " +
			m.theme.OptionValue.Render(row.value)
		if i == m.optionsCursor {
			line = m.theme.ListSelected.Render("> ") + line +
				"  " + m.theme.Help.Render(row.hint)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render("esc back"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
