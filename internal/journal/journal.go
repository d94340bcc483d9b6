// Package journal keeps a local record of recording sessions in
// SQLite. A session row is written when recording starts and completed
// when it ends; a row that never got its end timestamp marks a crash.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/slate-tools/cli/internal/journal/migrations"
)

// Entry is one recorded session.
type Entry struct {
	ID         string
	WorkDir    string
	Profile    string
	StartedAt  time.Time
	EndedAt    time.Time // zero until Finish
	ExitReason string
	Frames     int64
	Dropped    int64
}

// Crashed reports whether the session never reached Finish.
func (e Entry) Crashed() bool {
	return e.EndedAt.IsZero()
}

// Duration is the recorded length, zero for crashed sessions.
func (e Entry) Duration() time.Duration {
	if e.Crashed() {
		return 0
	}
	return e.EndedAt.Sub(e.StartedAt)
}

// Store wraps the journal database. It implements the session journal
// used by the launcher and the sessions listing.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the journal database and runs any pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// NewWithDB wraps an existing connection. Used by tests with
// pre-migrated in-memory databases.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// setDBPermissions restricts the journal and its sidecar files. The
// journal records where footage lives, which is nobody else's business.
func setDBPermissions(path string) {
	if path == ":memory:" {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Begin records the start of a session.
func (s *Store) Begin(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, work_dir, profile, started_at)
		 VALUES (?, ?, ?, ?)`,
		e.ID,
		e.WorkDir,
		e.Profile,
		e.StartedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// Finish completes a session row.
func (s *Store) Finish(id string, endedAt time.Time, reason string, frames, dropped int64) error {
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET ended_at = ?, exit_reason = ?, frames = ?, dropped = ?
		 WHERE id = ?`,
		endedAt.UTC().Format(time.RFC3339),
		reason,
		frames,
		dropped,
		id,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("journal: unknown session %s", id)
	}
	return nil
}

// Recent returns sessions newest first. A zero since means no lower
// bound; limit <= 0 means no cap.
func (s *Store) Recent(limit int, since time.Time) ([]Entry, error) {
	query := `SELECT id, work_dir, profile, started_at, ended_at, exit_reason, frames, dropped
	          FROM sessions`
	var args []interface{}

	if !since.IsZero() {
		query += ` WHERE started_at >= ?`
		args = append(args, since.UTC().Format(time.RFC3339))
	}

	query += ` ORDER BY started_at DESC, id DESC`

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e       Entry
		started string
		ended   sql.NullString
	)

	err := rows.Scan(&e.ID, &e.WorkDir, &e.Profile, &started, &ended,
		&e.ExitReason, &e.Frames, &e.Dropped)
	if err != nil {
		return Entry{}, fmt.Errorf("scan session: %w", err)
	}

	e.StartedAt, err = time.Parse(time.RFC3339, started)
	if err != nil {
		return Entry{}, fmt.Errorf("parse started_at: %w", err)
	}

	if ended.Valid && ended.String != "" {
		e.EndedAt, err = time.Parse(time.RFC3339, ended.String)
		if err != nil {
			return Entry{}, fmt.Errorf("parse ended_at: %w", err)
		}
	}

	return e, nil
}
