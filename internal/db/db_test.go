package db

import (
	"database/sql"
	"testing"

	"rihla/internal/model"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestDraftLifecycle(t *testing.T) {
	t.Parallel()
	database := openTestDB(t)

	// Nothing saved yet.
	payload, err := LoadDraft(database)
	require.NoError(t, err)
	require.Nil(t, payload)

	require.NoError(t, SaveDraft(database, []byte(`{"step":2}`)))
	payload, err = LoadDraft(database)
	require.NoError(t, err)
	require.JSONEq(t, `{"step":2}`, string(payload))

	// A second save replaces, never duplicates.
	require.NoError(t, SaveDraft(database, []byte(`{"step":3}`)))
	payload, err = LoadDraft(database)
	require.NoError(t, err)
	require.JSONEq(t, `{"step":3}`, string(payload))

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM drafts`).Scan(&count))
	require.Equal(t, 1, count)

	require.NoError(t, ClearDraft(database))
	payload, err = LoadDraft(database)
	require.NoError(t, err)
	require.Nil(t, payload)
}

func TestHistoryInsertAndList(t *testing.T) {
	t.Parallel()
	database := openTestDB(t)

	first := model.HistoryEntry{
		CircuitID:     42,
		Name:          "Circuit Tunis to Sousse",
		Code:          "CIRC1AB",
		DepartureCity: "Tunis",
		ArrivalCity:   "Sousse",
		Price:         158.5,
		Duration:      4,
		DepartureDate: "2026-10-01",
		ArrivalDate:   "2026-10-04",
	}
	id, err := InsertHistory(database, first)
	require.NoError(t, err)
	require.NotZero(t, id)

	second := first
	second.CircuitID = 43
	second.Name = "Circuit Tunis to Djerba"
	_, err = InsertHistory(database, second)
	require.NoError(t, err)

	entries, err := ListHistory(database)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.Equal(t, "Tunis", e.DepartureCity)
		require.Equal(t, 4, e.Duration)
		require.False(t, e.CreatedAt.IsZero())
	}

	got, err := GetHistory(database, id)
	require.NoError(t, err)
	require.Equal(t, int64(42), got.CircuitID)
	require.Equal(t, "CIRC1AB", got.Code)
	require.InDelta(t, 158.5, got.Price, 1e-9)
}

func TestGetHistoryMissing(t *testing.T) {
	t.Parallel()
	database := openTestDB(t)

	_, err := GetHistory(database, 999)
	require.Error(t, err)
}
