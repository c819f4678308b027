package domain

import "context"

// SnapshotRepository stores the serialized app state.
// Load returns ErrSnapshotNotFound when nothing has been saved yet.
type SnapshotRepository interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
}
