package versions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a version. A public token collision surfaces as
// ErrTokenConflict so the caller can retry with a fresh token.
func (r *PGRepo) Create(ctx context.Context, v Version) error {
	const query = `
INSERT INTO versions (
    id, file_id, job_id, title,
    resume_html, resume_html_redacted, cover_html, cover_html_redacted,
    public_token, views, is_public, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.ExecContext(ctx, query,
		v.ID,
		v.FileID,
		v.JobID,
		v.Title,
		v.ResumeHTML,
		v.RedactedResumeHTML,
		v.CoverHTML,
		v.RedactedCoverHTML,
		v.PublicToken,
		v.Views,
		v.IsPublic,
		v.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrTokenConflict
		}
		return err
	}
	return nil
}

// GetByID fetches a version by ID.
func (r *PGRepo) GetByID(ctx context.Context, versionID string) (Version, error) {
	const query = selectVersion + ` WHERE id = $1 LIMIT 1`
	return r.scanVersion(r.DB.QueryRowContext(ctx, query, versionID))
}

// GetByPublicToken fetches a version by its share token.
func (r *PGRepo) GetByPublicToken(ctx context.Context, token string) (Version, error) {
	const query = selectVersion + ` WHERE public_token = $1 LIMIT 1`
	return r.scanVersion(r.DB.QueryRowContext(ctx, query, token))
}

// Delete removes a version and its view records in one transaction.
func (r *PGRepo) Delete(ctx context.Context, versionID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM views WHERE version_id = $1`, versionID); err != nil {
		return fmt.Errorf("delete views: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM versions WHERE id = $1`, versionID)
	if err != nil {
		return fmt.Errorf("delete version: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// IncrementViews bumps the denormalized counter atomically.
func (r *PGRepo) IncrementViews(ctx context.Context, versionID string) error {
	result, err := r.DB.ExecContext(ctx, `UPDATE versions SET views = views + 1 WHERE id = $1`, versionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateView inserts one view record.
func (r *PGRepo) CreateView(ctx context.Context, view View) error {
	const query = `
INSERT INTO views (id, version_id, session_id, referrer, user_agent, viewed_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query,
		view.ID,
		view.VersionID,
		view.SessionID,
		view.Referrer,
		view.UserAgent,
		view.ViewedAt,
	)
	return err
}

const selectVersion = `
SELECT id, file_id, job_id, title,
       resume_html, resume_html_redacted, cover_html, cover_html_redacted,
       public_token, views, is_public, created_at
FROM versions`

func (r *PGRepo) scanVersion(row *sql.Row) (Version, error) {
	var v Version
	err := row.Scan(
		&v.ID,
		&v.FileID,
		&v.JobID,
		&v.Title,
		&v.ResumeHTML,
		&v.RedactedResumeHTML,
		&v.CoverHTML,
		&v.RedactedCoverHTML,
		&v.PublicToken,
		&v.Views,
		&v.IsPublic,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Version{}, ErrNotFound
		}
		return Version{}, err
	}
	return v, nil
}

var _ Repo = (*PGRepo)(nil)
