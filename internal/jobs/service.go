package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const minJobTextLength = 10

// Service captures job postings from pasted text or a fetched URL.
type Service struct {
	Repo    Repo
	Fetcher *Fetcher
}

// IntakeInput carries the raw job intake request. Text takes precedence over
// URL when both are present.
type IntakeInput struct {
	JobURL  string
	JobText string
	Title   string
	Company string
}

// IntakeResult describes a stored job posting.
type IntakeResult struct {
	JobID   string
	Title   string
	Company string
	URL     string
	Content string
}

// Intake validates the input, fetches the posting when only a URL was given,
// and persists the job.
func (s *Service) Intake(ctx context.Context, in IntakeInput) (IntakeResult, error) {
	text := strings.TrimSpace(in.JobText)
	url := strings.TrimSpace(in.JobURL)
	title := strings.TrimSpace(in.Title)
	company := strings.TrimSpace(in.Company)

	var content string
	switch {
	case text != "":
		if len(text) < minJobTextLength {
			return IntakeResult{}, fmt.Errorf("%w: job text is too short", ErrInvalidInput)
		}
		content = text
	case url != "":
		fetched, err := s.Fetcher.Fetch(ctx, url)
		if err != nil {
			return IntakeResult{}, err
		}
		content = fetched.Content
		if title == "" {
			title = fetched.Title
		}
	default:
		return IntakeResult{}, fmt.Errorf("%w: either jobUrl or jobText must be provided", ErrInvalidInput)
	}

	job := StoredJob{
		ID:        uuid.NewString(),
		Title:     title,
		Company:   company,
		URL:       url,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return IntakeResult{}, fmt.Errorf("persist job: %w", err)
	}

	return IntakeResult{
		JobID:   job.ID,
		Title:   job.Title,
		Company: job.Company,
		URL:     job.URL,
		Content: job.Content,
	}, nil
}

// Get returns the stored job for the given ID.
func (s *Service) Get(ctx context.Context, jobID string) (StoredJob, error) {
	if strings.TrimSpace(jobID) == "" {
		return StoredJob{}, fmt.Errorf("%w: job id is required", ErrInvalidInput)
	}
	return s.Repo.GetByID(ctx, jobID)
}
