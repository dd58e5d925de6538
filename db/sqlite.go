package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if needed) the SQLite registry file and its schema.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (kind, id)
		);
	`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("error creating records table: %w", err)
	}

	return conn, nil
}

// SQLite is a Store persisted in a shared records table. Each registry uses
// its own kind so projects and models never collide.
type SQLite[V any] struct {
	conn *sql.DB
	kind string
}

func NewSQLite[V any](conn *sql.DB, kind string) *SQLite[V] {
	return &SQLite[V]{conn: conn, kind: kind}
}

func (s *SQLite[V]) Get(ctx context.Context, id string) (V, error) {
	var zero V
	var raw string

	err := s.conn.QueryRowContext(ctx,
		"SELECT value FROM records WHERE kind = ? AND id = ?", s.kind, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to query %s %s: %w", s.kind, id, err)
	}

	var value V
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return zero, fmt.Errorf("failed to decode %s %s: %w", s.kind, id, err)
	}
	return value, nil
}

func (s *SQLite[V]) Set(ctx context.Context, id string, value V) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s: %w", s.kind, id, err)
	}

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO records (kind, id, value) VALUES (?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, s.kind, id, string(raw))
	if err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", s.kind, id, err)
	}
	return nil
}

func (s *SQLite[V]) Delete(ctx context.Context, id string) error {
	result, err := s.conn.ExecContext(ctx, "DELETE FROM records WHERE kind = ? AND id = ?", s.kind, id)
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", s.kind, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
