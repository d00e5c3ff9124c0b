package jobs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a job posting.
func (r *PGRepo) Create(ctx context.Context, job StoredJob) error {
	const query = `
INSERT INTO jobs (id, title, company, url, content, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Company,
		job.URL,
		job.Content,
		job.CreatedAt,
	)
	return err
}

// GetByID fetches a job posting by ID.
func (r *PGRepo) GetByID(ctx context.Context, jobID string) (StoredJob, error) {
	const query = `
SELECT id, title, company, url, content, created_at
FROM jobs
WHERE id = $1
LIMIT 1`
	var job StoredJob
	err := r.DB.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.Title,
		&job.Company,
		&job.URL,
		&job.Content,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredJob{}, ErrNotFound
		}
		return StoredJob{}, err
	}
	return job, nil
}

var _ Repo = (*PGRepo)(nil)
