// notepad-tui - A terminal interface for the LLM Notepad backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/notepad-tui/internal/api"
	"github.com/jeranaias/notepad-tui/internal/cli"
	"github.com/jeranaias/notepad-tui/internal/config"
	"github.com/jeranaias/notepad-tui/internal/history"
	"github.com/jeranaias/notepad-tui/internal/ui/chat"
	"github.com/jeranaias/notepad-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	plain := flag.Bool("plain", false, "run the line-mode chat loop instead of the full-screen TUI")
	debug := flag.Bool("debug", false, "write debug logs to the config directory")
	serverURL := flag.String("server", "", "backend base URL (overrides config)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Printf("notepad-tui %s (%s, %s)\n", Version, GitCommit, BuildDate)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}

	if *debug {
		if err := setupDebugLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
	} else if !*plain && flag.Arg(0) != "ask" {
		// The alternate screen owns the terminal in TUI mode.
		log.SetOutput(io.Discard)
	}

	client := api.NewClientWithConfig(&api.ClientConfig{BaseURL: cfg.Server.URL})
	store := openHistory(cfg)
	if store != nil {
		defer store.Close()
	}

	// One-shot question: notepad-tui ask "..."
	if flag.Arg(0) == "ask" {
		question := strings.Join(flag.Args()[1:], " ")
		if err := cli.Ask(context.Background(), client, question); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *plain || cfg.UI.PlainMode || !cli.IsTTY() {
		runPlain(client, store)
		return
	}

	runTUI(cfg, client, store)
}

// =============================================================================
// SURFACES
// =============================================================================

func runPlain(client *api.Client, store *history.Store) {
	loop := cli.NewChatLoop(client, store)
	defer loop.Close()
	if err := loop.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg *config.Config, client *api.Client, store *history.Store) {
	theme := styles.NewTheme(cfg.UI.DarkMode)
	prefs := config.NewPreferences(cfg)

	// The runner needs the program's Send function, which does not exist
	// until the program is constructed; route through a late-bound pointer.
	var program *tea.Program
	runner := chat.NewSessionRunner(client, func(msg tea.Msg) {
		if program != nil {
			program.Send(msg)
		}
	})

	m := chat.New(theme, prefs, client, runner, store)
	program = tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support for drag resize
	)

	// Hot-reload the config file so theme edits apply without restart.
	if path, err := config.Path(); err == nil {
		watcher, werr := config.NewWatcher(path, func(updated *config.Config) {
			program.Send(chat.ConfigReloadedMsg{Config: updated})
		})
		if werr == nil && watcher.Watch() == nil {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SETUP HELPERS
// =============================================================================

// openHistory opens the prompt history store, or returns nil when history is
// disabled or unavailable. History failures never block chatting.
func openHistory(cfg *config.Config) *history.Store {
	if cfg.History.Disabled {
		return nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		log.Printf("prompt history unavailable: %v", err)
		return nil
	}
	return store
}

func setupDebugLog() error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	// The file stays open for the process lifetime.
	_, err = tea.LogToFile(filepath.Join(dir, "debug.log"), "debug")
	return err
}
