package testutil

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/slate-tools/cli/internal/journal"
	"github.com/slate-tools/cli/internal/journal/migrations"
)

// NewTestDB creates an in-memory SQLite database with the journal
// schema applied. The database is closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")

	t.Cleanup(func() {
		_ = db.Close()
	})

	err = migrations.Run(db)
	require.NoError(t, err, "failed to run migrations")

	return db
}

// NewTestJournal wraps NewTestDB in a journal store.
func NewTestJournal(t *testing.T) *journal.Store {
	t.Helper()
	return journal.NewWithDB(NewTestDB(t))
}

// SeedSessions inserts finished session rows. Entries with a zero
// EndedAt are left unfinished, the shape a crash leaves behind.
func SeedSessions(t *testing.T, j *journal.Store, entries []journal.Entry) {
	t.Helper()

	for _, e := range entries {
		require.NoError(t, j.Begin(e), "failed to seed session %s", e.ID)
		if e.EndedAt.IsZero() {
			continue
		}
		err := j.Finish(e.ID, e.EndedAt, e.ExitReason, e.Frames, e.Dropped)
		require.NoError(t, err, "failed to finish seeded session %s", e.ID)
	}
}

// Timestamp builds a UTC time for seed data.
func Timestamp(t *testing.T, value string) time.Time {
	t.Helper()

	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err, "bad timestamp %q", value)
	return ts
}
