package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one line of the activity journal.
type Entry struct {
	Seq           int64
	At            time.Time
	Op            string // add, remove, undo, login, logout
	EmailID       string
	Index         int
	Count         int // inbox size after the change
	Authenticated bool
}

// SQLiteJournal is an append-only log of session activity. It is written
// to while a session runs and read back only for display; inbox state is
// never restored from it.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLiteJournal opens (or creates) the journal at the given path.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS entries (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	at_unix_nano  INTEGER NOT NULL,
	op            TEXT NOT NULL,
	email_id      TEXT NOT NULL DEFAULT '',
	idx           INTEGER NOT NULL DEFAULT 0,
	count         INTEGER NOT NULL DEFAULT 0,
	authenticated INTEGER NOT NULL DEFAULT 0
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// Append stores e and returns its sequence number. A zero At is replaced by
// the current time.
func (j *SQLiteJournal) Append(ctx context.Context, e Entry) (int64, error) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	res, err := j.db.ExecContext(ctx, `
		INSERT INTO entries (at_unix_nano, op, email_id, idx, count, authenticated)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.At.UnixNano(), e.Op, e.EmailID, e.Index, e.Count, e.Authenticated)
	if err != nil {
		return 0, fmt.Errorf("append journal entry: %w", err)
	}
	return res.LastInsertId()
}

// List returns the newest limit entries, oldest first. A non-positive limit
// returns everything.
func (j *SQLiteJournal) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT seq, at_unix_nano, op, email_id, idx, count, authenticated FROM entries ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e  Entry
			at int64
		)
		if err := rows.Scan(&e.Seq, &at, &e.Op, &e.EmailID, &e.Index, &e.Count, &e.Authenticated); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for l, r := 0, len(entries)-1; l < r; l, r = l+1, r-1 {
		entries[l], entries[r] = entries[r], entries[l]
	}
	return entries, nil
}

func (j *SQLiteJournal) Count(ctx context.Context) (int, error) {
	var count int
	err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}
