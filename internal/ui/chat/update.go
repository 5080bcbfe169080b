// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/notepad-tui/internal/api"
	"github.com/jeranaias/notepad-tui/internal/model"
	"github.com/jeranaias/notepad-tui/internal/ui/components"
	"github.com/jeranaias/notepad-tui/internal/ui/styles"
	"github.com/jeranaias/notepad-tui/internal/util"
)

// transportNotice is the trailing turn appended when a stream fails below
// the protocol level.
const transportNotice = "An error occurred while streaming."

// =============================================================================
// UPDATE
// =============================================================================

// Update is the Bubble Tea update function.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if m.activeSessionID == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// ---- streaming ----

	case StreamOpenedMsg:
		if msg.SessionID != m.activeSessionID {
			return m, nil
		}
		m.status = components.StatusStreaming
		return m, m.spinner.Tick

	case StreamFragmentMsg:
		if msg.SessionID != m.activeSessionID {
			return m, nil
		}
		if err := m.log.AppendFragment(msg.TargetIndex, msg.Fragment); err != nil {
			log.Printf("dropping fragment: %v", err)
			return m, nil
		}
		m.refreshViewport(true)
		return m, nil

	case StreamDoneMsg:
		if msg.SessionID != m.activeSessionID {
			return m, nil
		}
		m.closeSession(msg.TargetIndex)
		m.status = components.StatusReady
		m.refreshViewport(true)
		return m, nil

	case StreamServerErrorMsg:
		if msg.SessionID != m.activeSessionID {
			return m, nil
		}
		// The partial reply stands; the server payload is diagnostic only.
		log.Printf("stream server error: %s", msg.Raw)
		m.closeSession(msg.TargetIndex)
		m.refreshViewport(true)
		return m, m.setStatus(components.StatusError, "The server reported a streaming error.")

	case StreamTransportErrorMsg:
		if msg.SessionID != m.activeSessionID {
			return m, nil
		}
		log.Printf("stream transport error: %v", msg.Err)
		m.closeSession(msg.TargetIndex)
		m.log.AppendSystemNotice(transportNotice)
		m.refreshViewport(true)
		return m, m.setStatus(components.StatusError, api.UserMessage(msg.Err))

	// ---- models ----

	case ModelsLoadedMsg:
		if msg.Err != nil {
			m.models = nil
			return m, m.surfaceError(msg.Err)
		}
		m.models = msg.Models
		if m.activeModel == "" && len(m.models) > 0 {
			// The first listed model is the default; tell the backend.
			m.activeModel = m.models[0]
			return m, setModelCmd(m.client, m.activeModel)
		}
		return m, nil

	case ModelSetMsg:
		if msg.Err != nil {
			return m, m.surfaceError(msg.Err)
		}
		m.activeModel = msg.Model
		if m.status == components.StatusLoading {
			m.status = components.StatusReady
		}
		return m, m.setStatus(m.status, "Model: "+msg.Model)

	// ---- stored chats ----

	case ChatsLoadedMsg:
		if msg.Err != nil {
			m.chats = nil
			return m, m.surfaceError(msg.Err)
		}
		m.chats = msg.Chats
		if m.chatCursor >= len(m.chats) {
			m.chatCursor = 0
		}
		return m, nil

	case ChatCreatedMsg:
		if msg.Err != nil {
			return m, m.surfaceError(msg.Err)
		}
		// Load the fresh chat so the log starts empty under the new id.
		return m, tea.Batch(
			loadChatCmd(m.client, msg.ChatID),
			m.setStatus(m.status, "Created "+msg.ChatID),
		)

	case ChatLoadedMsg:
		if msg.Err != nil {
			return m, m.surfaceError(msg.Err)
		}
		// A chat switch discards any in-flight stream.
		m.interrupt()
		m.log.ReplaceAll(turnsFromMessages(msg.Messages))
		m.log.ChatID = msg.ChatID
		m.mode = viewChat
		m.status = components.StatusReady
		m.refreshViewport(true)
		return m, nil

	// ---- settings ----

	case SettingsLoadedMsg:
		if msg.Err != nil {
			return m, m.surfaceError(msg.Err)
		}
		m.settings = msg.Settings
		return m, nil

	case SettingsUpdatedMsg:
		if msg.Err != nil {
			return m, m.surfaceError(msg.Err)
		}
		// Refetch so the options view shows what the server committed.
		return m, getSettingsCmd(m.client)

	// ---- ambient ----

	case HistoryLoadedMsg:
		m.recall = msg.Prompts
		return m, nil

	case ConfigReloadedMsg:
		if msg.Config != nil && msg.Config.UI.DarkMode != m.theme.Dark {
			m.theme = styles.NewTheme(msg.Config.UI.DarkMode)
			m.refreshViewport(false)
		}
		return m, nil

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.statusDetail = ""
			if m.status == components.StatusError && m.activeSessionID == 0 {
				m.status = components.StatusReady
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.mode == viewNameEntry {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// closeSession releases the transport and finalizes the target turn.
func (m *Model) closeSession(targetIndex int) {
	m.cancelMgr.cancel()
	m.activeSessionID = 0
	m.log.FinalizeTurn(targetIndex)
}

// turnsFromMessages maps stored chat messages to display turns. Assistant
// messages render as bot turns, everything else as user turns.
func turnsFromMessages(messages []api.ChatMessage) []*model.Turn {
	turns := make([]*model.Turn, 0, len(messages))
	for _, msg := range messages {
		if msg.Role == "assistant" {
			turns = append(turns, model.NewAssistantTurn(msg.Content))
		} else {
			turns = append(turns, model.NewUserTurn(msg.Content))
		}
	}
	return turns
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMap.Quit) {
		m.Teardown()
		return m, tea.Quit
	}

	switch m.mode {
	case viewModels:
		selected, back := pickerNav(m.keyMap, msg, len(m.models), &m.modelCursor)
		switch {
		case back:
			if m.picking == pickSummaryModel {
				m.mode = viewOptions
			} else {
				m.mode = viewChat
			}
		case selected:
			choice := m.models[m.modelCursor]
			if m.picking == pickSummaryModel {
				m.mode = viewOptions
				return m, setSummarizationModelCmd(m.client, choice)
			}
			m.mode = viewChat
			return m, setModelCmd(m.client, choice)
		}
		return m, nil

	case viewChats:
		selected, back := pickerNav(m.keyMap, msg, len(m.chats), &m.chatCursor)
		switch {
		case back:
			m.mode = viewChat
		case selected:
			return m, loadChatCmd(m.client, m.chats[m.chatCursor])
		}
		return m, nil

	case viewOptions:
		return m.handleOptionsKey(msg)

	case viewNameEntry:
		return m.handleNameEntryKey(msg)
	}

	return m.handleChatKey(msg)
}

// handleNameEntryKey drives the new-chat naming prompt.
func (m Model) handleNameEntryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		m.mode = viewChat
		m.nameInput.Blur()
		m.input.Focus()
		return m, nil

	case key.Matches(msg, m.keyMap.Select):
		name := util.NormalizeInput(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		m.mode = viewChat
		m.nameInput.Blur()
		m.input.Focus()
		return m, createChatCmd(m.client, name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m, m.submit()

	case key.Matches(msg, m.keyMap.Cancel):
		m.interrupt()
		m.refreshViewport(false)
		return m, nil

	case key.Matches(msg, m.keyMap.Models):
		m.mode = viewModels
		m.picking = pickActiveModel
		return m, listModelsCmd(m.client)

	case key.Matches(msg, m.keyMap.Chats):
		m.mode = viewChats
		return m, listChatsCmd(m.client)

	case key.Matches(msg, m.keyMap.Options):
		m.mode = viewOptions
		m.optionsCursor = 0
		return m, getSettingsCmd(m.client)

	case key.Matches(msg, m.keyMap.NewChat):
		m.mode = viewNameEntry
		m.nameInput.SetValue("chat-" + time.Now().Format("20060102-150405"))
		m.nameInput.CursorEnd()
		m.input.Blur()
		return m, m.nameInput.Focus()

	case key.Matches(msg, m.keyMap.ToggleTheme):
		return m, m.toggleTheme()

	case key.Matches(msg, m.keyMap.HistoryPrev):
		m.recallPrev()
		return m, nil

	case key.Matches(msg, m.keyMap.HistoryNext):
		m.recallNext()
		return m, nil

	case msg.String() == "alt+enter":
		m.input.InsertString("\n")
		return m, nil

	case msg.String() == "pgup":
		m.viewport.HalfViewUp()
		return m, nil

	case msg.String() == "pgdown":
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// pickerNav moves the cursor of a simple list and reports whether the entry
// under it was selected or the picker dismissed.
func pickerNav(keys KeyMap, msg tea.KeyMsg, n int, cursor *int) (selected, back bool) {
	switch {
	case key.Matches(msg, keys.Up):
		if *cursor > 0 {
			*cursor--
		}
	case key.Matches(msg, keys.Down):
		if *cursor < n-1 {
			*cursor++
		}
	case key.Matches(msg, keys.Select):
		return n > 0, false
	case key.Matches(msg, keys.Back):
		return false, true
	}
	return false, false
}

// Options view rows.
const (
	optSummarize = iota
	optSummaryModel
	optMaxMessages
	optDarkMode
	optCount
)

func (m Model) handleOptionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Back):
		m.mode = viewChat
		return m, nil

	case key.Matches(msg, m.keyMap.Up):
		if m.optionsCursor > 0 {
			m.optionsCursor--
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Down):
		if m.optionsCursor < optCount-1 {
			m.optionsCursor++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Select):
		return m.selectOption()

	case msg.String() == "left", msg.String() == "right":
		if m.optionsCursor == optMaxMessages && m.settings != nil {
			n := m.settings.MaxMessagesToFeed
			if msg.String() == "left" {
				n--
			} else {
				n++
			}
			if n < 0 {
				n = 0
			}
			return m, setMaxMessagesCmd(m.client, n)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) selectOption() (tea.Model, tea.Cmd) {
	switch m.optionsCursor {
	case optSummarize:
		if m.settings == nil {
			return m, nil
		}
		if m.settings.SummarizeHistory {
			return m, disableSummarizationCmd(m.client)
		}
		return m, setSummarizationCmd(m.client, true)

	case optSummaryModel:
		m.mode = viewModels
		m.picking = pickSummaryModel
		return m, listModelsCmd(m.client)

	case optDarkMode:
		return m, m.toggleTheme()
	}
	return m, nil
}

// toggleTheme flips the persisted dark-mode preference and rebuilds styles.
func (m *Model) toggleTheme() tea.Cmd {
	dark := !m.theme.Dark
	m.theme = styles.NewTheme(dark)
	m.refreshViewport(false)
	if err := m.prefs.SetDarkMode(dark); err != nil {
		return m.setStatus(m.status, "Could not save theme preference")
	}
	return nil
}

// =============================================================================
// MOUSE HANDLING
// =============================================================================

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.viewport.LineUp(3)
		return m, nil

	case tea.MouseWheelDown:
		m.viewport.LineDown(3)
		return m, nil

	case tea.MouseLeft:
		// Press on the divider starts a drag; further left-button events at
		// new coordinates are the drag motion.
		if m.resizer.Dragging() {
			m.resizer.PointerMove(msg.Y)
			m.layout()
		} else if msg.Y == m.dividerRow() {
			m.resizer.PointerDown(msg.Y)
		}
		return m, nil

	case tea.MouseRelease:
		if m.resizer.Dragging() {
			m.resizer.PointerUp()
			m.layout()
		}
		return m, nil
	}
	return m, nil
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout recomputes component dimensions from the window size and the
// resizer's committed input height.
func (m *Model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.resizer.SetViewport(m.height)

	inputRows := m.resizer.Size()
	// Fixed rows: title, divider, status bar, and the input box border
	// (top + bottom).
	vh := m.height - inputRows - 5
	if vh < 1 {
		vh = 1
	}

	m.viewport.Width = m.width
	m.viewport.Height = vh
	// The input box frame eats 6 columns: box inset, border, and padding.
	m.input.SetWidth(m.width - 6)
	m.input.SetHeight(inputRows)
	m.refreshViewport(false)
}

// dividerRow is the screen row of the drag handle between the conversation
// and the input region.
func (m *Model) dividerRow() int {
	return 1 + m.viewport.Height
}
