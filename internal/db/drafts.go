package db

import (
	"database/sql"
	"fmt"
)

// SaveDraft stores the autosaved wizard draft, replacing any previous one.
func SaveDraft(db *sql.DB, payload []byte) error {
	query := `
		INSERT INTO drafts (id, payload, updated_at)
		VALUES (1, ?, strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		ON CONFLICT(id) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = excluded.updated_at
	`
	if _, err := db.Exec(query, string(payload)); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// LoadDraft returns the stored wizard draft, or nil when none exists.
func LoadDraft(db *sql.DB) ([]byte, error) {
	var payload string
	err := db.QueryRow(`SELECT payload FROM drafts WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return []byte(payload), nil
}

// ClearDraft removes the autosaved draft after the wizard completes.
func ClearDraft(db *sql.DB) error {
	if _, err := db.Exec(`DELETE FROM drafts WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
