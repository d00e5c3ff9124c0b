package files

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]StoredFile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]StoredFile)}
}

// Create stores a file record.
func (r *MemoryRepo) Create(ctx context.Context, file StoredFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[file.ID] = file
	return nil
}

// GetByID returns a file record by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, fileID string) (StoredFile, error) {
	if err := ctx.Err(); err != nil {
		return StoredFile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	file, ok := r.data[fileID]
	if !ok {
		return StoredFile{}, ErrNotFound
	}
	return file, nil
}

var _ Repo = (*MemoryRepo)(nil)
