// Package store persists local UI state in a SQLite file: dashboard widget
// layout, tree view preferences, and editor draft autosaves. This is
// process-wide state with an explicit load-at-startup/save-on-change
// lifecycle; nothing here is authoritative — the server remains the single
// source of truth for planning data.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps the local state database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) the state database at path. Use
// ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS widgets (
			name TEXT PRIMARY KEY,
			position INTEGER NOT NULL,
			visible INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS drafts (
			parent_sku TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init state db: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// Widget is one dashboard widget's layout entry.
type Widget struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
	Visible  bool   `json:"visible"`
}

// WidgetLayout loads the saved dashboard layout in position order.
func (s *Store) WidgetLayout() ([]Widget, error) {
	rows, err := s.db.Query("SELECT name, position, visible FROM widgets ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load widget layout: %w", err)
	}
	defer rows.Close()

	var out []Widget
	for rows.Next() {
		var w Widget
		var visible int
		if err := rows.Scan(&w.Name, &w.Position, &visible); err != nil {
			return nil, err
		}
		w.Visible = visible != 0
		out = append(out, w)
	}
	return out, rows.Err()
}

// SaveWidgetLayout replaces the stored layout atomically.
func (s *Store) SaveWidgetLayout(widgets []Widget) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM widgets"); err != nil {
		return fmt.Errorf("save widget layout: %w", err)
	}
	for _, w := range widgets {
		visible := 0
		if w.Visible {
			visible = 1
		}
		if _, err := tx.Exec("INSERT INTO widgets (name, position, visible) VALUES (?,?,?)",
			w.Name, w.Position, visible); err != nil {
			return fmt.Errorf("save widget %s: %w", w.Name, err)
		}
	}
	return tx.Commit()
}

// TreeOpenAll reports the saved default-expand-all preference for the tree
// view. Missing preference defaults to false (root-only open).
func (s *Store) TreeOpenAll() (bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM preferences WHERE key='tree_open_all'").Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load tree preference: %w", err)
	}
	return value == "1", nil
}

// SetTreeOpenAll saves the default-expand-all preference.
func (s *Store) SetTreeOpenAll(openAll bool) error {
	value := "0"
	if openAll {
		value = "1"
	}
	_, err := s.db.Exec(
		"INSERT INTO preferences (key, value) VALUES ('tree_open_all', ?) ON CONFLICT(key) DO UPDATE SET value=excluded.value",
		value)
	if err != nil {
		return fmt.Errorf("save tree preference: %w", err)
	}
	return nil
}

// DraftRow is one autosaved editor row. Invalid rows (empty sku, zero
// quantity) are preserved as typed — filtering happens at save time, not
// here.
type DraftRow struct {
	ItemSKU  string  `json:"item_sku"`
	Quantity float64 `json:"quantity"`
}

// SaveDraft autosaves the in-progress rows for one parent, replacing any
// previous autosave.
func (s *Store) SaveDraft(parentSKU string, rows []DraftRow) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO drafts (parent_sku, payload, updated_at) VALUES (?,?,CURRENT_TIMESTAMP) ON CONFLICT(parent_sku) DO UPDATE SET payload=excluded.payload, updated_at=CURRENT_TIMESTAMP",
		parentSKU, string(payload))
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// LoadDraft returns the autosaved rows for parentSKU, with ok=false when no
// autosave exists.
func (s *Store) LoadDraft(parentSKU string) ([]DraftRow, bool, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM drafts WHERE parent_sku=?", parentSKU).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load draft: %w", err)
	}
	var rows []DraftRow
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil, false, fmt.Errorf("decode draft: %w", err)
	}
	return rows, true, nil
}

// DeleteDraft removes the autosave for parentSKU. Called after a successful
// save or an explicit discard.
func (s *Store) DeleteDraft(parentSKU string) error {
	if _, err := s.db.Exec("DELETE FROM drafts WHERE parent_sku=?", parentSKU); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
