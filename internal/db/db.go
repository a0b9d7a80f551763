package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
    id         INTEGER PRIMARY KEY CHECK(id = 1),
    payload    TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE TABLE IF NOT EXISTS circuit_history (
    id             INTEGER PRIMARY KEY,
    circuit_id     INTEGER NOT NULL,
    name           TEXT NOT NULL,
    code           TEXT NOT NULL,
    departure_city TEXT,
    arrival_city   TEXT,
    price          REAL NOT NULL DEFAULT 0,
    duration       INTEGER NOT NULL DEFAULT 0,
    departure_date TEXT,
    arrival_date   TEXT,
    created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);

CREATE INDEX IF NOT EXISTS idx_circuit_history_circuit_id ON circuit_history(circuit_id);
CREATE INDEX IF NOT EXISTS idx_circuit_history_created_at ON circuit_history(created_at DESC);
`

// Open opens or creates the SQLite database and initializes the schema.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}
