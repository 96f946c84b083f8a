// Package store keeps converted tree logs in a local SQLite database so runs
// can be inspected and uploaded later without re-converting.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"canopy/treelog/internal/tree"
)

const schema = `
CREATE TABLE IF NOT EXISTS tree_logs (
	id TEXT PRIMARY KEY,
	label TEXT NOT NULL,
	algorithm TEXT NOT NULL,
	snapshots INTEGER NOT NULL,
	payload TEXT NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tree_logs_created ON tree_logs(created_at);
`

// Store wraps a SQLite database holding encoded tree logs.
type Store struct {
	conn *sql.DB
	Path string
}

// Record is one stored log's metadata. The payload itself is loaded on Get.
type Record struct {
	ID        string
	Label     string
	Algorithm string
	Snapshots int
	CreatedAt int64
}

// Open opens (creating if needed) the log store at path, with WAL mode for
// concurrent reads.
func Open(path string) (*Store, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{conn: conn, Path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Put encodes and stores a log under a fresh id, returning the id.
func (s *Store) Put(label, algorithm string, l *tree.Log) (string, error) {
	payload, err := tree.Encode(l)
	if err != nil {
		return "", fmt.Errorf("encoding log: %w", err)
	}

	id := uuid.NewString()
	_, err = s.conn.Exec(`
		INSERT INTO tree_logs (id, label, algorithm, snapshots, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, label, algorithm, l.Len(), string(payload), time.Now().UnixMilli())
	if err != nil {
		return "", fmt.Errorf("inserting log: %w", err)
	}
	return id, nil
}

// Get loads a stored log and its metadata by id.
func (s *Store) Get(id string) (*Record, *tree.Log, error) {
	row := s.conn.QueryRow(`
		SELECT id, label, algorithm, snapshots, payload, created_at
		FROM tree_logs WHERE id = ?
	`, id)

	var r Record
	var payload string
	if err := row.Scan(&r.ID, &r.Label, &r.Algorithm, &r.Snapshots, &payload, &r.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, fmt.Errorf("log %s: %w", id, tree.ErrNotFound)
		}
		return nil, nil, fmt.Errorf("loading log %s: %w", id, err)
	}

	l, err := tree.Decode([]byte(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("decoding stored log %s: %w", id, err)
	}
	return &r, l, nil
}

// List returns metadata for stored logs, newest first.
func (s *Store) List(limit int) ([]Record, error) {
	rows, err := s.conn.Query(`
		SELECT id, label, algorithm, snapshots, created_at
		FROM tree_logs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing logs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Label, &r.Algorithm, &r.Snapshots, &r.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Delete removes a stored log by id.
func (s *Store) Delete(id string) error {
	res, err := s.conn.Exec(`DELETE FROM tree_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting log %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("log %s: %w", id, tree.ErrNotFound)
	}
	return nil
}
