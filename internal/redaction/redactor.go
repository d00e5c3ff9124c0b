package redaction

import (
	"context"
	"regexp"
	"strings"

	"resume-tailor-backend/internal/gemini"
	"resume-tailor-backend/internal/prompts"
	"resume-tailor-backend/internal/shared/telemetry"
)

const (
	// MethodAI marks output produced by the completion model.
	MethodAI = "ai"
	// MethodRegex marks output produced by the pattern fallback.
	MethodRegex = "regex"

	emailPlaceholder   = "[email protected]"
	phonePlaceholder   = "[phone number]"
	addressPlaceholder = "[address]"

	redactionMaxTokens   = 2048
	redactionTemperature = 0.1
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.]?\d{4}`),
		regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
	}

	// Street-address heuristic: house number followed by a named way.
	addressPattern = regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd)\b`)
)

// Options select which detail classes the pattern fallback touches. Emails
// and phones are redacted unless explicitly disabled; addresses only when
// requested.
type Options struct {
	RedactEmails    *bool
	RedactPhones    *bool
	RedactAddresses bool
}

func (o Options) emails() bool { return o.RedactEmails == nil || *o.RedactEmails }
func (o Options) phones() bool { return o.RedactPhones == nil || *o.RedactPhones }

// Redactor removes contact details from resume HTML. It prefers the
// completion model and falls back to pattern replacement when the model is
// unavailable or returns unusable output.
type Redactor struct {
	Complete gemini.CompletionFunc
}

// Result is the outcome of a redaction pass.
type Result struct {
	RedactedHTML string
	Method       string
}

// Redact returns html with contact details replaced by placeholders. It never
// fails; the pattern fallback always produces a result.
func (r *Redactor) Redact(ctx context.Context, htmlContent string, opts Options) Result {
	if r.Complete != nil {
		prompt := prompts.BuildRedactionPrompt(htmlContent)
		out, err := r.Complete(ctx, prompt, gemini.Options{
			MaxTokens:   redactionMaxTokens,
			Temperature: gemini.Float64(redactionTemperature),
		})
		if err == nil {
			if cleaned := cleanModelOutput(out); cleaned != "" {
				return Result{RedactedHTML: cleaned, Method: MethodAI}
			}
			telemetry.Warn("redaction.model_output_empty", nil)
		} else {
			telemetry.Warn("redaction.model_failed", map[string]any{"error": err.Error()})
		}
	}
	return Result{RedactedHTML: RedactPatterns(htmlContent, opts), Method: MethodRegex}
}

// RedactPatterns applies the selected patterns directly. Placeholders already
// present are left untouched, so repeated passes are stable.
func RedactPatterns(htmlContent string, opts Options) string {
	out := htmlContent
	if opts.emails() {
		out = emailPattern.ReplaceAllString(out, emailPlaceholder)
	}
	if opts.phones() {
		for _, p := range phonePatterns {
			out = p.ReplaceAllString(out, phonePlaceholder)
		}
	}
	if opts.RedactAddresses {
		out = addressPattern.ReplaceAllString(out, addressPlaceholder)
	}
	return out
}

// cleanModelOutput strips markdown code fences the model sometimes wraps
// around HTML output.
func cleanModelOutput(out string) string {
	out = strings.TrimSpace(out)
	out = strings.TrimPrefix(out, "```html")
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}
