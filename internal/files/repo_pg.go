package files

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a stored file.
func (r *PGRepo) Create(ctx context.Context, file StoredFile) error {
	const query = `
INSERT INTO files (id, filename, file_size, file_type, storage_path, text_content, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.DB.ExecContext(ctx, query,
		file.ID,
		file.Filename,
		file.SizeBytes,
		file.MimeType,
		file.StoragePath,
		file.TextContent,
		file.CreatedAt,
	)
	return err
}

// GetByID fetches a stored file by ID.
func (r *PGRepo) GetByID(ctx context.Context, fileID string) (StoredFile, error) {
	const query = `
SELECT id, filename, file_size, file_type, storage_path, text_content, created_at
FROM files
WHERE id = $1
LIMIT 1`
	var file StoredFile
	err := r.DB.QueryRowContext(ctx, query, fileID).Scan(
		&file.ID,
		&file.Filename,
		&file.SizeBytes,
		&file.MimeType,
		&file.StoragePath,
		&file.TextContent,
		&file.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredFile{}, ErrNotFound
		}
		return StoredFile{}, err
	}
	return file, nil
}

var _ Repo = (*PGRepo)(nil)
