// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history records submitted prompts so the input field can recall
// them across sessions.
package history

import (
	"database/sql"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS prompts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    text TEXT NOT NULL,
    submitted_at INTEGER NOT NULL -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_prompts_submitted_at ON prompts(submitted_at);
`

// MaxEntries bounds the stored history; older prompts are pruned past it.
const MaxEntries = 500

// =============================================================================
// STORE
// =============================================================================

// Store is a prompt history backed by a SQLite database.
// Safe for concurrent use (database/sql serializes access).
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single writer; keeps the pure-Go driver out of locking trouble.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a submitted prompt. Empty prompts and immediate duplicates
// of the most recent entry are skipped.
func (s *Store) Record(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var last string
	err := s.db.QueryRow("SELECT text FROM prompts ORDER BY id DESC LIMIT 1").Scan(&last)
	if err == nil && last == text {
		return nil
	}
	if err != nil && err != sql.ErrNoRows {
		return err
	}

	if _, err := s.db.Exec(
		"INSERT INTO prompts (text, submitted_at) VALUES (?, ?)",
		text, time.Now().Unix(),
	); err != nil {
		return err
	}
	return s.prune()
}

// Recent returns up to limit prompts, newest first.
func (s *Store) Recent(limit int) ([]string, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query("SELECT text FROM prompts ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var prompts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		prompts = append(prompts, text)
	}
	return prompts, rows.Err()
}

// prune drops the oldest entries past MaxEntries.
func (s *Store) prune() error {
	_, err := s.db.Exec(`
		DELETE FROM prompts WHERE id NOT IN (
			SELECT id FROM prompts ORDER BY id DESC LIMIT ?
		)`, MaxEntries)
	return err
}
