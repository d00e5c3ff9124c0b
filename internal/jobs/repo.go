package jobs

import "context"

// Repo defines persistence operations for job postings.
type Repo interface {
	Create(ctx context.Context, job StoredJob) error
	GetByID(ctx context.Context, jobID string) (StoredJob, error)
}
