package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIKey:  "test-key",
		Model:   "gemini-pro",
		BaseURL: srv.URL,
	})
}

func TestGenerateCompletionSuccess(t *testing.T) {
	var gotPath string
	var gotBody generateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "<p>hello</p>"}}}},
			},
		})
	})

	out, err := client.GenerateCompletion(context.Background(), "prompt text", Options{
		MaxTokens:   512,
		Temperature: Float64(0.3),
	})
	if err != nil {
		t.Fatalf("GenerateCompletion: %v", err)
	}
	if out != "<p>hello</p>" {
		t.Errorf("output = %q", out)
	}
	if gotPath != "/v1beta/models/gemini-pro:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody.GenerationConfig.MaxOutputTokens != 512 {
		t.Errorf("maxOutputTokens = %d", gotBody.GenerationConfig.MaxOutputTokens)
	}
	if gotBody.GenerationConfig.Temperature != 0.3 {
		t.Errorf("temperature = %v", gotBody.GenerationConfig.Temperature)
	}
	if len(gotBody.Contents) != 1 || gotBody.Contents[0].Parts[0].Text != "prompt text" {
		t.Errorf("prompt not carried in request body")
	}
}

func TestGenerateCompletionLegacyOutputField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{"output": "legacy text"}},
		})
	})

	out, err := client.GenerateCompletion(context.Background(), "p", Options{})
	if err != nil {
		t.Fatalf("GenerateCompletion: %v", err)
	}
	if out != "legacy text" {
		t.Errorf("output = %q", out)
	}
}

func TestGenerateCompletionStatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrModelNotFound},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusTooManyRequests, ErrRateLimited},
	}
	for _, tt := range tests {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		_, err := client.GenerateCompletion(context.Background(), "p", Options{})
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestGenerateCompletionUnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := client.GenerateCompletion(context.Background(), "p", Options{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d", apiErr.Status)
	}
}

func TestGenerateCompletionSafetyBlocked(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{"finishReason": "SAFETY"}},
		})
	})
	_, err := client.GenerateCompletion(context.Background(), "p", Options{})
	if !errors.Is(err, ErrSafetyBlocked) {
		t.Errorf("err = %v, want ErrSafetyBlocked", err)
	}
}

func TestGenerateCompletionMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates": []}`))
	})
	_, err := client.GenerateCompletion(context.Background(), "p", Options{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestGenerateCompletionNoCredentials(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.GenerateCompletion(context.Background(), "p", Options{})
	if !errors.Is(err, ErrNoCredentials) {
		t.Errorf("err = %v, want ErrNoCredentials", err)
	}
}

func TestGenerateCompletionServiceAccountNotImplemented(t *testing.T) {
	client := NewClient(Config{ServiceAccountPath: "/tmp/sa.json"})
	_, err := client.GenerateCompletion(context.Background(), "p", Options{})
	if !errors.Is(err, ErrNotImplemented) {
		t.Errorf("err = %v, want ErrNotImplemented", err)
	}
}

func TestGenerateCompletionModelOverride(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{"output": "x"}},
		})
	})
	if _, err := client.GenerateCompletion(context.Background(), "p", Options{Model: "gemini-1.5-flash"}); err != nil {
		t.Fatalf("GenerateCompletion: %v", err)
	}
	if !strings.Contains(gotPath, "gemini-1.5-flash") {
		t.Errorf("path = %q, want override model", gotPath)
	}
}
