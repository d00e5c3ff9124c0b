package files

import "context"

// Repo defines persistence operations for stored files.
type Repo interface {
	Create(ctx context.Context, file StoredFile) error
	GetByID(ctx context.Context, fileID string) (StoredFile, error)
}
