// Package sqlite provides a SQLite-backed snapshot store for single-machine installs.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS app_snapshots (
    id         TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

// SnapshotRepository implements domain.SnapshotRepository on a SQLite file
type SnapshotRepository struct {
	db *sql.DB
	id string
}

// Open opens or creates the snapshot database at dbPath
func Open(dbPath, id string) (*SnapshotRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, fmt.Errorf("creating snapshot dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}
	// a single connection keeps :memory: databases alive between calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SnapshotRepository{db: db, id: id}, nil
}

// Close closes the database
func (r *SnapshotRepository) Close() error {
	return r.db.Close()
}

// Load reads the stored snapshot
func (r *SnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, "SELECT payload FROM app_snapshots WHERE id = ?", r.id).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return []byte(payload), nil
}

// Save creates or replaces the stored snapshot
func (r *SnapshotRepository) Save(ctx context.Context, payload []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.ExecContext(ctx, `
INSERT INTO app_snapshots (id, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		r.id, string(payload), now)
	return err
}
