package gemini

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCredentials means neither an API key nor a service account is configured.
	ErrNoCredentials = errors.New("no Gemini credentials configured: set GEMINI_API_KEY")
	// ErrNotImplemented marks the recognized but unsupported service-account auth path.
	ErrNotImplemented = errors.New("service account authentication not implemented: set GEMINI_API_KEY for REST API access")
	// ErrModelNotFound maps a 404 from the completion API.
	ErrModelNotFound = errors.New("Gemini API endpoint not found: check model name and API key")
	// ErrForbidden maps a 403 from the completion API.
	ErrForbidden = errors.New("Gemini API access forbidden: check your API key permissions")
	// ErrRateLimited maps a 429 from the completion API.
	ErrRateLimited = errors.New("Gemini API rate limit exceeded")
	// ErrSafetyBlocked means generation finished with a safety block.
	ErrSafetyBlocked = errors.New("content generation was blocked due to safety filters")
	// ErrMalformedResponse means a 2xx response carried no usable text.
	ErrMalformedResponse = errors.New("unexpected response format from Gemini API")
)

// APIError is a non-2xx response not covered by a dedicated sentinel.
type APIError struct {
	Status     int
	StatusText string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Gemini API error: %d %s", e.Status, e.StatusText)
}

// TransportError wraps network-level failures, including timeouts.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to generate completion with Gemini: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
