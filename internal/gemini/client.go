package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-pro"

	defaultMaxTokens   = 2048
	defaultTemperature = 0.7
)

// Config carries everything the client needs; no ambient environment reads.
type Config struct {
	APIKey             string
	ServiceAccountPath string
	Model              string
	BaseURL            string
	Timeout            time.Duration
	HTTPClient         *http.Client
}

// Options tune a single completion request.
type Options struct {
	MaxTokens   int
	Temperature *float64
	Model       string
}

// CompletionFunc is the signature shared by the live client and the
// deterministic mock.
type CompletionFunc func(ctx context.Context, prompt string, opts Options) (string, error)

// Client issues completion requests against the Gemini REST API.
// It performs no retries; retry policy belongs to callers.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient constructs a completion client from explicit configuration.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens"`
	Temperature     float64 `json:"temperature"`
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content      *content `json:"content"`
	Output       string   `json:"output"`
	FinishReason string   `json:"finishReason"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
	Error      *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateCompletion issues one synchronous completion call and returns the
// generated text. Failures are classified; see errors.go.
func (c *Client) GenerateCompletion(ctx context.Context, prompt string, opts Options) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.cfg.Model
	}
	if model == "" {
		model = defaultModel
	}

	if c.cfg.APIKey == "" {
		if c.cfg.ServiceAccountPath != "" {
			return "", ErrNotImplemented
		}
		return "", ErrNoCredentials
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	temperature := defaultTemperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []contentPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: maxTokens,
			Temperature:     temperature,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(model), url.QueryEscape(c.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", classifyStatus(resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", ErrMalformedResponse
	}

	if len(parsed.Candidates) > 0 {
		first := parsed.Candidates[0]
		if strings.EqualFold(first.FinishReason, "SAFETY") {
			return "", ErrSafetyBlocked
		}
		if first.Content != nil && len(first.Content.Parts) > 0 && first.Content.Parts[0].Text != "" {
			return first.Content.Parts[0].Text, nil
		}
		if first.Output != "" {
			return first.Output, nil
		}
	}

	if parsed.Error != nil {
		return "", &APIError{Status: resp.StatusCode, StatusText: parsed.Error.Message}
	}
	return "", ErrMalformedResponse
}

func classifyStatus(code int, statusText string) error {
	switch code {
	case http.StatusNotFound:
		return ErrModelNotFound
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return &APIError{Status: code, StatusText: statusText}
	}
}

// IsClassified reports whether err is one of the client's classified failures
// (as opposed to an unexpected wrapped error).
func IsClassified(err error) bool {
	var apiErr *APIError
	var transportErr *TransportError
	switch {
	case errors.Is(err, ErrNoCredentials),
		errors.Is(err, ErrNotImplemented),
		errors.Is(err, ErrModelNotFound),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrSafetyBlocked),
		errors.Is(err, ErrMalformedResponse),
		errors.As(err, &apiErr),
		errors.As(err, &transportErr):
		return true
	}
	return false
}

// Float64 returns a pointer to v; convenience for Options.Temperature.
func Float64(v float64) *float64 { return &v }
