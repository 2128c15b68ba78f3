package mdpress

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/eringen/mdpress/publisher"
)

// PublishRecord is one row of publish history.
type PublishRecord struct {
	ID        int64
	Title     string
	PostID    int
	URL       string
	Status    string
	Success   bool
	Error     string
	CreatedAt string
}

// Store wraps a SQLite database holding the publish history.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL for concurrent read/write, busy timeout so writers wait instead
	// of returning SQLITE_BUSY, synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS publishes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    post_id INTEGER NOT NULL DEFAULT 0,
    url TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT '',
    success INTEGER NOT NULL,
    error TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);
`)
	return err
}

// RecordPublish appends one publish outcome to the history.
func (s *Store) RecordPublish(title string, res publisher.Result) error {
	success := 0
	if res.Success {
		success = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO publishes (title, post_id, url, status, success, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		title, res.PostID, res.URL, res.Status, success, res.Error,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListPublishes returns the most recent publish records, newest first.
func (s *Store) ListPublishes(limit int) ([]PublishRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, title, post_id, url, status, success, error, created_at FROM publishes ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PublishRecord
	for rows.Next() {
		var r PublishRecord
		var success int
		if err := rows.Scan(&r.ID, &r.Title, &r.PostID, &r.URL, &r.Status, &success, &r.Error, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Success = success == 1
		records = append(records, r)
	}
	return records, rows.Err()
}
