package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-tailor-backend/internal/files"
	"resume-tailor-backend/internal/gemini"
	"resume-tailor-backend/internal/jobs"
	"resume-tailor-backend/internal/prompts"
	"resume-tailor-backend/internal/shared/telemetry"
)

var (
	ErrMissingResume = errors.New("missing resume source")
	ErrMissingJob    = errors.New("missing job source")
)

const (
	resumeMaxTokens   = 2048
	resumeTemperature = 0.7

	coverLetterMaxTokens   = 1024
	coverLetterTemperature = 0.8
)

// Service produces a tailored resume and cover letter for a resume source
// paired with a job source.
type Service struct {
	Files    *files.Service
	Jobs     *jobs.Service
	Complete gemini.CompletionFunc
	// Fallback substitutes canned output when the completion model fails,
	// keeping the endpoint usable without credentials.
	Fallback bool
}

// Input selects the resume and job sources. A stored ID takes precedence over
// inline text for each side.
type Input struct {
	FileID     string
	ResumeText string
	JobID      string
	JobText    string
}

// Output carries the generated documents.
type Output struct {
	TailoredResumeHTML string
	CoverLetterHTML    string
	Summary            string
}

// Generate resolves both sources, builds the prompts and runs the two
// completions in sequence.
func (s *Service) Generate(ctx context.Context, in Input) (Output, error) {
	resumeText, err := s.resolveResume(ctx, in)
	if err != nil {
		return Output{}, err
	}
	jobText, jobTitle, jobCompany, err := s.resolveJob(ctx, in)
	if err != nil {
		return Output{}, err
	}

	resumeData := prompts.ValidateResumeData(prompts.ResumeInput{Text: resumeText})
	jobData := prompts.ValidateJobData(prompts.JobInput{Text: jobText})
	if jobTitle != "" {
		jobData.Title = jobTitle
	}
	if jobCompany != "" {
		jobData.Company = jobCompany
	}

	resumeHTML, err := s.complete(ctx, prompts.BuildResumePrompt(resumeData, jobData), gemini.Options{
		MaxTokens:   resumeMaxTokens,
		Temperature: gemini.Float64(resumeTemperature),
	})
	if err != nil {
		return Output{}, fmt.Errorf("generate resume: %w", err)
	}

	coverHTML, err := s.complete(ctx, prompts.BuildCoverLetterPrompt(resumeData, jobData), gemini.Options{
		MaxTokens:   coverLetterMaxTokens,
		Temperature: gemini.Float64(coverLetterTemperature),
	})
	if err != nil {
		return Output{}, fmt.Errorf("generate cover letter: %w", err)
	}

	return Output{
		TailoredResumeHTML: resumeHTML,
		CoverLetterHTML:    coverHTML,
		Summary:            buildSummary(jobData.Title, jobData.Company),
	}, nil
}

func (s *Service) resolveResume(ctx context.Context, in Input) (string, error) {
	if strings.TrimSpace(in.FileID) != "" {
		file, err := s.Files.Get(ctx, in.FileID)
		if err != nil {
			return "", err
		}
		return file.TextContent, nil
	}
	if strings.TrimSpace(in.ResumeText) != "" {
		return in.ResumeText, nil
	}
	return "", ErrMissingResume
}

func (s *Service) resolveJob(ctx context.Context, in Input) (text, title, company string, err error) {
	if strings.TrimSpace(in.JobID) != "" {
		job, err := s.Jobs.Get(ctx, in.JobID)
		if err != nil {
			return "", "", "", err
		}
		return job.Content, job.Title, job.Company, nil
	}
	if strings.TrimSpace(in.JobText) != "" {
		return in.JobText, "", "", nil
	}
	return "", "", "", ErrMissingJob
}

func (s *Service) complete(ctx context.Context, prompt string, opts gemini.Options) (string, error) {
	out, err := s.Complete(ctx, prompt, opts)
	if err != nil {
		if !s.Fallback {
			return "", err
		}
		telemetry.Warn("generation.fallback", map[string]any{"error": err.Error()})
		return gemini.MockGenerateCompletion(ctx, prompt, opts)
	}
	return out, nil
}

func buildSummary(title, company string) string {
	summary := "Generated tailored resume"
	if title != "" {
		summary += " for " + title
	}
	if company != "" {
		summary += " at " + company
	}
	return summary
}
