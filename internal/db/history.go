package db

import (
	"database/sql"
	"fmt"
	"time"

	"rihla/internal/model"
)

// InsertHistory records a composed circuit locally so the history screen
// works without the platform being reachable.
func InsertHistory(db *sql.DB, entry model.HistoryEntry) (int64, error) {
	query := `
		INSERT INTO circuit_history
			(circuit_id, name, code, departure_city, arrival_city, price, duration, departure_date, arrival_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	res, err := db.Exec(query,
		entry.CircuitID, entry.Name, entry.Code,
		entry.DepartureCity, entry.ArrivalCity,
		entry.Price, entry.Duration,
		entry.DepartureDate, entry.ArrivalDate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get history entry id: %w", err)
	}
	return id, nil
}

// ListHistory retrieves the locally saved circuits, newest first.
func ListHistory(db *sql.DB) ([]model.HistoryEntry, error) {
	query := `
		SELECT id, circuit_id, name, code,
		       COALESCE(departure_city, ''), COALESCE(arrival_city, ''),
		       price, duration,
		       COALESCE(departure_date, ''), COALESCE(arrival_date, ''),
		       created_at
		FROM circuit_history
		ORDER BY created_at DESC
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var results []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.CircuitID, &e.Name, &e.Code,
			&e.DepartureCity, &e.ArrivalCity, &e.Price, &e.Duration,
			&e.DepartureDate, &e.ArrivalDate, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		if t, err := time.Parse("2006-01-02T15:04:05.000Z", createdAt); err == nil {
			e.CreatedAt = t
		}
		results = append(results, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}
	return results, nil
}

// GetHistory retrieves a single local history entry by row id.
func GetHistory(db *sql.DB, id int64) (model.HistoryEntry, error) {
	query := `
		SELECT id, circuit_id, name, code,
		       COALESCE(departure_city, ''), COALESCE(arrival_city, ''),
		       price, duration,
		       COALESCE(departure_date, ''), COALESCE(arrival_date, ''),
		       created_at
		FROM circuit_history
		WHERE id = ?
	`
	var e model.HistoryEntry
	var createdAt string
	err := db.QueryRow(query, id).Scan(&e.ID, &e.CircuitID, &e.Name, &e.Code,
		&e.DepartureCity, &e.ArrivalCity, &e.Price, &e.Duration,
		&e.DepartureDate, &e.ArrivalDate, &createdAt)
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("failed to get history entry: %w", err)
	}
	if t, err := time.Parse("2006-01-02T15:04:05.000Z", createdAt); err == nil {
		e.CreatedAt = t
	}
	return e, nil
}
