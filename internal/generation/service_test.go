package generation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"resume-tailor-backend/internal/files"
	"resume-tailor-backend/internal/gemini"
	"resume-tailor-backend/internal/jobs"
	"resume-tailor-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T, complete gemini.CompletionFunc) (*Service, *files.MemoryRepo, *jobs.MemoryRepo) {
	t.Helper()
	fileRepo := files.NewMemoryRepo()
	jobRepo := jobs.NewMemoryRepo()
	svc := &Service{
		Files:    &files.Service{Repo: fileRepo, Store: local.New(t.TempDir(), "http://localhost:8080")},
		Jobs:     &jobs.Service{Repo: jobRepo, Fetcher: jobs.NewFetcher()},
		Complete: complete,
	}
	return svc, fileRepo, jobRepo
}

func markerComplete(ctx context.Context, prompt string, opts gemini.Options) (string, error) {
	switch {
	case strings.Contains(prompt, "expert resume writer"):
		return "<div>resume output</div>", nil
	case strings.Contains(prompt, "cover letter"):
		return "<div>cover output</div>", nil
	}
	return "", errors.New("unexpected prompt")
}

func TestGenerateFromInlineText(t *testing.T) {
	svc, _, _ := newTestService(t, markerComplete)

	out, err := svc.Generate(context.Background(), Input{
		ResumeText: "ten years of Go",
		JobText:    "Staff Engineer at Acme",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.TailoredResumeHTML != "<div>resume output</div>" {
		t.Errorf("resume html = %q", out.TailoredResumeHTML)
	}
	if out.CoverLetterHTML != "<div>cover output</div>" {
		t.Errorf("cover html = %q", out.CoverLetterHTML)
	}
	if out.Summary != "Generated tailored resume" {
		t.Errorf("summary = %q", out.Summary)
	}
}

func TestGenerateSummaryUsesStoredJobMetadata(t *testing.T) {
	svc, _, jobRepo := newTestService(t, markerComplete)
	job := jobs.StoredJob{
		ID:        "job-1",
		Title:     "Staff Engineer",
		Company:   "Acme",
		Content:   "long posting content",
		CreatedAt: time.Now(),
	}
	if err := jobRepo.Create(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	out, err := svc.Generate(context.Background(), Input{ResumeText: "resume", JobID: "job-1"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := "Generated tailored resume for Staff Engineer at Acme"
	if out.Summary != want {
		t.Errorf("summary = %q, want %q", out.Summary, want)
	}
}

func TestGenerateMissingSources(t *testing.T) {
	svc, _, _ := newTestService(t, markerComplete)

	if _, err := svc.Generate(context.Background(), Input{JobText: "posting"}); !errors.Is(err, ErrMissingResume) {
		t.Errorf("err = %v, want ErrMissingResume", err)
	}
	if _, err := svc.Generate(context.Background(), Input{ResumeText: "resume"}); !errors.Is(err, ErrMissingJob) {
		t.Errorf("err = %v, want ErrMissingJob", err)
	}
}

func TestGenerateUnknownIDs(t *testing.T) {
	svc, _, _ := newTestService(t, markerComplete)

	_, err := svc.Generate(context.Background(), Input{FileID: "nope", JobText: "posting"})
	if !errors.Is(err, files.ErrNotFound) {
		t.Errorf("err = %v, want files.ErrNotFound", err)
	}

	_, err = svc.Generate(context.Background(), Input{ResumeText: "resume", JobID: "nope"})
	if !errors.Is(err, jobs.ErrNotFound) {
		t.Errorf("err = %v, want jobs.ErrNotFound", err)
	}
}

func TestGenerateStoredIDTakesPrecedence(t *testing.T) {
	var gotPrompts []string
	complete := func(ctx context.Context, prompt string, opts gemini.Options) (string, error) {
		gotPrompts = append(gotPrompts, prompt)
		return "<div>ok</div>", nil
	}
	svc, _, jobRepo := newTestService(t, complete)
	if err := jobRepo.Create(context.Background(), jobs.StoredJob{ID: "job-1", Content: "stored posting"}); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	_, err := svc.Generate(context.Background(), Input{
		ResumeText: "resume",
		JobID:      "job-1",
		JobText:    "inline posting that should be ignored",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, p := range gotPrompts {
		if strings.Contains(p, "inline posting") {
			t.Errorf("inline job text used despite stored id")
		}
		if !strings.Contains(p, "stored posting") {
			t.Errorf("stored posting missing from prompt")
		}
	}
}

func TestGenerateFallback(t *testing.T) {
	failing := func(ctx context.Context, prompt string, opts gemini.Options) (string, error) {
		return "", gemini.ErrNoCredentials
	}

	svc, _, _ := newTestService(t, failing)
	svc.Fallback = true

	out, err := svc.Generate(context.Background(), Input{ResumeText: "resume", JobText: "posting"})
	if err != nil {
		t.Fatalf("Generate with fallback: %v", err)
	}
	if !strings.Contains(out.TailoredResumeHTML, `class="resume"`) {
		t.Errorf("fallback resume html = %q", out.TailoredResumeHTML)
	}
	if !strings.Contains(out.CoverLetterHTML, `class="cover-letter"`) {
		t.Errorf("fallback cover html = %q", out.CoverLetterHTML)
	}
}

func TestGenerateNoFallbackPropagatesError(t *testing.T) {
	failing := func(ctx context.Context, prompt string, opts gemini.Options) (string, error) {
		return "", gemini.ErrRateLimited
	}
	svc, _, _ := newTestService(t, failing)

	_, err := svc.Generate(context.Background(), Input{ResumeText: "resume", JobText: "posting"})
	if !errors.Is(err, gemini.ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}

func TestGenerateCompletionParameters(t *testing.T) {
	var gotOpts []gemini.Options
	complete := func(ctx context.Context, prompt string, opts gemini.Options) (string, error) {
		gotOpts = append(gotOpts, opts)
		return "<div>ok</div>", nil
	}
	svc, _, _ := newTestService(t, complete)

	if _, err := svc.Generate(context.Background(), Input{ResumeText: "r", JobText: "posting j"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(gotOpts) != 2 {
		t.Fatalf("expected two completion calls, got %d", len(gotOpts))
	}
	if gotOpts[0].MaxTokens != 2048 || *gotOpts[0].Temperature != 0.7 {
		t.Errorf("resume opts = %+v", gotOpts[0])
	}
	if gotOpts[1].MaxTokens != 1024 || *gotOpts[1].Temperature != 0.8 {
		t.Errorf("cover letter opts = %+v", gotOpts[1])
	}
}
