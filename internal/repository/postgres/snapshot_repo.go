package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	createSnapshotTableSQL = `
CREATE TABLE IF NOT EXISTS app_snapshots (
	id         TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

	getSnapshotSQL = `SELECT payload FROM app_snapshots WHERE id = $1`

	upsertSnapshotSQL = `
INSERT INTO app_snapshots (id, payload, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`
)

// DBTX is the subset of pgxpool.Pool used by the repository
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SnapshotRepository implements domain.SnapshotRepository using PostgreSQL
type SnapshotRepository struct {
	db DBTX
	id string
}

// NewSnapshotRepository creates a new SnapshotRepository storing the snapshot under id
func NewSnapshotRepository(pool *pgxpool.Pool, id string) *SnapshotRepository {
	return &SnapshotRepository{db: pool, id: id}
}

// EnsureSchema creates the snapshot table if it does not exist
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, createSnapshotTableSQL)
	return err
}

// Load retrieves the stored snapshot
func (r *SnapshotRepository) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := r.db.QueryRow(ctx, getSnapshotSQL, r.id).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, err
	}
	return payload, nil
}

// Save creates or replaces the stored snapshot
func (r *SnapshotRepository) Save(ctx context.Context, payload []byte) error {
	_, err := r.db.Exec(ctx, upsertSnapshotSQL, r.id, payload)
	return err
}
