package jobs

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]StoredJob
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]StoredJob)}
}

// Create stores a job posting.
func (r *MemoryRepo) Create(ctx context.Context, job StoredJob) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[job.ID] = job
	return nil
}

// GetByID returns a job posting by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, jobID string) (StoredJob, error) {
	if err := ctx.Err(); err != nil {
		return StoredJob{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.data[jobID]
	if !ok {
		return StoredJob{}, ErrNotFound
	}
	return job, nil
}

var _ Repo = (*MemoryRepo)(nil)
