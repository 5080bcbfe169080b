// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/notepad-tui/internal/api"
	"github.com/jeranaias/notepad-tui/internal/config"
	"github.com/jeranaias/notepad-tui/internal/history"
	"github.com/jeranaias/notepad-tui/internal/model"
	"github.com/jeranaias/notepad-tui/internal/ui/components"
	"github.com/jeranaias/notepad-tui/internal/ui/styles"
)

// =============================================================================
// VIEW MODES
// =============================================================================

// viewMode selects which screen the chat component renders.
type viewMode int

const (
	viewChat      viewMode = iota // Conversation + input
	viewModels                    // Model picker
	viewChats                     // Stored chat picker
	viewOptions                   // Summarization settings + theme
	viewNameEntry                 // New-chat naming prompt
)

// pickTarget says what a model-picker selection applies to.
type pickTarget int

const (
	pickActiveModel pickTarget = iota
	pickSummaryModel
)

// Input region sizing in terminal rows. The drag resizer's generic defaults
// assume pixel-like units; the TUI drives it with row-scaled bounds instead.
const (
	inputMinRows       = 3
	inputStartRows     = 4
	inputMaxMarginRows = 10
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme *styles.Theme
	prefs config.Preferences

	// Collaborators
	client  *api.Client
	runner  *SessionRunner
	history *history.Store // nil when history is disabled

	// Conversation
	log *model.Log

	// Active stream. activeSessionID is zero when no stream is open; events
	// tagged with any other ID are stale and dropped.
	activeSessionID uint64
	cancelMgr       *cancelManager

	// Dimensions
	width  int
	height int

	// UI components
	viewport  viewport.Model
	input     textarea.Model
	nameInput textinput.Model
	spinner   spinner.Model
	resizer   *DragResizer
	keyMap    KeyMap

	// Status bar
	status       components.Status
	statusDetail string
	statusSeq    int

	// Model picker
	models      []string
	activeModel string
	modelCursor int
	picking     pickTarget

	// Chat picker
	chats      []string
	chatCursor int

	// Options view
	settings      *api.Settings
	optionsCursor int

	// Prompt history recall
	recall    []string
	recallIdx int    // -1 when not recalling
	draft     string // input text stashed when recall begins

	mode viewMode
}

// New creates the chat model. The runner must already be wired to the
// program's Send function; store may be nil when prompt history is disabled.
func New(theme *styles.Theme, prefs config.Preferences, client *api.Client, runner *SessionRunner, store *history.Store) Model {
	input := textarea.New()
	input.Placeholder = "Type a message..."
	input.CharLimit = 0
	input.ShowLineNumbers = false
	input.SetHeight(inputStartRows)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.StreamCursor

	nameInput := textinput.New()
	nameInput.Placeholder = "Chat name"
	nameInput.CharLimit = 64

	resizer := NewDragResizerWithBounds(inputStartRows, 24, inputMinRows, inputMaxMarginRows)

	return Model{
		theme:     theme,
		prefs:     prefs,
		client:    client,
		runner:    runner,
		history:   store,
		log:       model.NewLog(),
		cancelMgr: newCancelManager(),
		viewport:  viewport.New(80, 20),
		input:     input,
		nameInput: nameInput,
		spinner:   sp,
		resizer:   resizer,
		keyMap:    DefaultKeyMap(),
		status:    components.StatusLoading,
		recallIdx: -1,
		mode:      viewChat,
	}
}

// Init loads the model list, current settings, scratch chat, and prompt
// history in parallel.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listModelsCmd(m.client),
		getSettingsCmd(m.client),
		loadChatCmd(m.client, ""),
		loadHistoryCmd(m.history),
		m.spinner.Tick,
	)
}

// Log exposes the conversation log for the view layer and tests.
func (m Model) Log() *model.Log {
	return m.log
}

// ActiveModel returns the currently selected backend model.
func (m Model) ActiveModel() string {
	return m.activeModel
}

// Streaming reports whether a reply is currently streaming in.
func (m Model) Streaming() bool {
	return m.activeSessionID != 0
}

// Teardown cancels any open stream and in-progress drag gesture. Called when
// the program exits.
func (m *Model) Teardown() {
	m.cancelMgr.cancel()
	m.activeSessionID = 0
	m.resizer.Teardown()
}

// setStatus updates the transient status detail and returns a command that
// clears it later.
func (m *Model) setStatus(status components.Status, detail string) tea.Cmd {
	m.status = status
	m.statusDetail = detail
	if detail == "" {
		return nil
	}
	m.statusSeq++
	return clearStatusCmd(m.statusSeq)
}

// surfaceError routes a collaborator failure to the status bar. Lists degrade
// to empty rather than tearing down the view.
func (m *Model) surfaceError(err error) tea.Cmd {
	return m.setStatus(components.StatusError, api.UserMessage(err))
}
