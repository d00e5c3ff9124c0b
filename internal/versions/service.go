package versions

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-tailor-backend/internal/redaction"
	"resume-tailor-backend/internal/shared/telemetry"
)

const (
	publicTokenLength  = 10
	tokenRetryAttempts = 3
	viewFieldLimit     = 500
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Service manages saved versions, share tokens and view tracking.
type Service struct {
	Repo     Repo
	Redactor *redaction.Redactor
}

// SaveInput carries one version to persist. IsPublic defaults to true when
// nil.
type SaveInput struct {
	Title      string
	ResumeHTML string
	CoverHTML  string
	IsPublic   *bool
	FileID     string
	JobID      string
}

// SaveResult describes a saved version, with non-fatal warnings surfaced to
// the caller.
type SaveResult struct {
	VersionID   string
	PublicToken string
	Title       string
	IsPublic    bool
	Warnings    []string
}

// Save validates, redacts when the version is public, and persists with a
// fresh share token. Token collisions are retried a bounded number of times.
func (s *Service) Save(ctx context.Context, in SaveInput) (SaveResult, error) {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.ResumeHTML) == "" ||
		strings.TrimSpace(in.CoverHTML) == "" {
		return SaveResult{}, fmt.Errorf("%w: title, resumeHtml and coverHtml are required", ErrInvalidInput)
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}

	var warnings []string
	redactedResume := in.ResumeHTML
	redactedCover := in.CoverHTML
	if isPublic {
		resumeResult := s.Redactor.Redact(ctx, in.ResumeHTML, redaction.Options{})
		coverResult := s.Redactor.Redact(ctx, in.CoverHTML, redaction.Options{})
		redactedResume = resumeResult.RedactedHTML
		redactedCover = coverResult.RedactedHTML
		if resumeResult.Method == redaction.MethodRegex || coverResult.Method == redaction.MethodRegex {
			warnings = append(warnings, "Redaction used pattern matching instead of the model")
		}
	}

	v := Version{
		ID:                 uuid.NewString(),
		Title:              strings.TrimSpace(in.Title),
		ResumeHTML:         in.ResumeHTML,
		CoverHTML:          in.CoverHTML,
		RedactedResumeHTML: redactedResume,
		RedactedCoverHTML:  redactedCover,
		IsPublic:           isPublic,
		FileID:             optionalID(in.FileID),
		JobID:              optionalID(in.JobID),
		CreatedAt:          time.Now().UTC(),
	}

	var err error
	for attempt := 0; attempt < tokenRetryAttempts; attempt++ {
		v.PublicToken, err = newPublicToken()
		if err != nil {
			return SaveResult{}, fmt.Errorf("generate token: %w", err)
		}
		err = s.Repo.Create(ctx, v)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrTokenConflict) {
			return SaveResult{}, fmt.Errorf("persist version: %w", err)
		}
		telemetry.Warn("version.token_conflict", map[string]any{"attempt": attempt + 1})
	}
	if err != nil {
		return SaveResult{}, fmt.Errorf("persist version: %w", err)
	}

	return SaveResult{
		VersionID:   v.ID,
		PublicToken: v.PublicToken,
		Title:       v.Title,
		IsPublic:    v.IsPublic,
		Warnings:    warnings,
	}, nil
}

// Get returns a version by ID.
func (s *Service) Get(ctx context.Context, versionID string) (Version, error) {
	if strings.TrimSpace(versionID) == "" {
		return Version{}, fmt.Errorf("%w: version id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, versionID)
}

// GetShared returns a version by share token. Private versions are
// indistinguishable from missing ones.
func (s *Service) GetShared(ctx context.Context, token string) (Version, error) {
	if strings.TrimSpace(token) == "" {
		return Version{}, ErrNotFound
	}
	v, err := s.Repo.GetByPublicToken(ctx, token)
	if err != nil {
		return Version{}, err
	}
	if !v.IsPublic {
		return Version{}, ErrNotFound
	}
	return v, nil
}

// Delete removes a version and its recorded views.
func (s *Service) Delete(ctx context.Context, versionID string) error {
	if strings.TrimSpace(versionID) == "" {
		return fmt.Errorf("%w: version id is required", ErrInvalidInput)
	}
	return s.Repo.Delete(ctx, versionID)
}

// ViewInput carries one view event.
type ViewInput struct {
	VersionID string
	SessionID string
	Referrer  string
	UserAgent string
}

// ViewResult describes a recorded view.
type ViewResult struct {
	ViewID   string
	Warnings []string
}

// RecordView inserts a view record for an existing version and bumps the
// denormalized counter. A counter failure is reported as a warning; the view
// record is the source of truth.
func (s *Service) RecordView(ctx context.Context, in ViewInput) (ViewResult, error) {
	if strings.TrimSpace(in.VersionID) == "" {
		return ViewResult{}, fmt.Errorf("%w: version id is required", ErrInvalidInput)
	}
	if _, err := s.Repo.GetByID(ctx, in.VersionID); err != nil {
		return ViewResult{}, err
	}

	view := View{
		ID:        uuid.NewString(),
		VersionID: in.VersionID,
		SessionID: truncate(in.SessionID, viewFieldLimit),
		Referrer:  truncate(in.Referrer, viewFieldLimit),
		UserAgent: truncate(in.UserAgent, viewFieldLimit),
		ViewedAt:  time.Now().UTC(),
	}
	if err := s.Repo.CreateView(ctx, view); err != nil {
		return ViewResult{}, fmt.Errorf("record view: %w", err)
	}

	result := ViewResult{ViewID: view.ID}
	if err := s.Repo.IncrementViews(ctx, in.VersionID); err != nil {
		telemetry.Warn("version.views_counter_failed", map[string]any{
			"versionId": in.VersionID,
			"error":     err.Error(),
		})
		result.Warnings = append(result.Warnings, "View counter was not updated")
	}
	return result, nil
}

// newPublicToken returns a 10-character lowercase alphanumeric token.
func newPublicToken() (string, error) {
	buf := make([]byte, publicTokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[int(b)%len(tokenAlphabet)]
	}
	return string(buf), nil
}

func optionalID(id string) *string {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil
	}
	return &id
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
