package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS activities (
    id         TEXT PRIMARY KEY,
    date       TEXT NOT NULL,     -- YYYY-MM-DD
    start_min  INTEGER NOT NULL,  -- minute of day
    end_min    INTEGER NOT NULL,
    pre_post   REAL NOT NULL DEFAULT 0,
    kind       TEXT NOT NULL,
    note       TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS activities_date ON activities(date);`

// SQLiteStore keeps the collection in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path and
// ensures the schema exists.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads every row ordered by date and start and rebuilds the collection
// under the stored IDs.
func (s *SQLiteStore) Load() (Collection, error) {
	rows, err := s.db.Query(`SELECT id, date, start_min, end_min, pre_post, kind, note FROM activities ORDER BY date, start_min`)
	if err != nil {
		return Collection{}, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	c := NewCollection()
	var rejected []error
	for rows.Next() {
		var (
			id, date   string
			start, end int
			r          Record
			kind       string
		)
		if err := rows.Scan(&id, &date, &start, &end, &r.PrePost, &kind, &r.Note); err != nil {
			return Collection{}, fmt.Errorf("failed to scan activity: %w", err)
		}
		if r.Date, err = ParseDate(date); err != nil {
			return Collection{}, fmt.Errorf("failed to scan activity: %w", err)
		}
		r.Start, r.End, r.Kind = TimeOfDay(start), TimeOfDay(end), Kind(kind)

		next, _, err := c.InsertWithID(id, r)
		if err != nil {
			rejected = append(rejected, fmt.Errorf("row %s: %w", id, err))
			continue
		}
		c = next
	}
	if err := rows.Err(); err != nil {
		return Collection{}, fmt.Errorf("failed to read activities: %w", err)
	}

	logRejected("sqlite", rejected)
	return c, nil
}

// Save replaces the table contents with the collection in one transaction.
func (s *SQLiteStore) Save(c Collection) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM activities`); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO activities (id, date, start_min, end_min, pre_post, kind, note) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range c.Entries() {
		if _, err = stmt.Exec(e.ID, e.Date.String(), int(e.Start), int(e.End), e.PrePost, string(e.Kind), e.Note); err != nil {
			return fmt.Errorf("failed to insert activity: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activities: %w", err)
	}
	return nil
}
