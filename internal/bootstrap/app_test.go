package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resume-tailor-backend/internal/shared/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Config{
		Port:               "8080",
		Env:                "dev",
		CORSAllowOrigin:    []string{"http://localhost:3000"},
		ObjectStoreType:    "local",
		LocalStoreDir:      t.TempDir(),
		AppBaseURL:         "http://localhost:8080",
		GenerationFallback: true,
	}
	app, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(func() { app.Close() })

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp, decodeJSON(t, resp)
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	body := decodeJSON(t, resp)
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("health = %d %v", resp.StatusCode, body)
	}
}

func TestUploadGenerateSaveShareFlow(t *testing.T) {
	srv := newTestServer(t)

	// Upload a plain text resume.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "resume.txt")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	fmt.Fprint(fw, "Jane Doe\nSenior Engineer\njane@example.com\n555-123-4567")
	mw.Close()

	resp, err := http.Post(srv.URL+"/api/upload", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST upload: %v", err)
	}
	uploadBody := decodeJSON(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("upload status = %d, body %v", resp.StatusCode, uploadBody)
	}
	fileID, _ := uploadBody["fileId"].(string)
	if fileID == "" {
		t.Fatalf("missing fileId: %v", uploadBody)
	}
	if preview, _ := uploadBody["textPreview"].(string); !strings.Contains(preview, "Jane Doe") {
		t.Errorf("textPreview = %q", preview)
	}

	// Store the job posting.
	resp, jobBody := postJSON(t, srv.URL+"/api/fetch-job", map[string]any{
		"jobText": "Acme is hiring a Staff Engineer to own the platform.",
		"title":   "Staff Engineer",
		"company": "Acme",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fetch-job status = %d, body %v", resp.StatusCode, jobBody)
	}
	jobID, _ := jobBody["jobId"].(string)
	if jobID == "" {
		t.Fatalf("missing jobId: %v", jobBody)
	}

	// Generate; without credentials the fallback produces canned output.
	resp, genBody := postJSON(t, srv.URL+"/api/generate", map[string]any{
		"fileId": fileID,
		"jobId":  jobID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("generate status = %d, body %v", resp.StatusCode, genBody)
	}
	resumeHTML, _ := genBody["tailoredResumeHtml"].(string)
	coverHTML, _ := genBody["coverLetterHtml"].(string)
	if resumeHTML == "" || coverHTML == "" {
		t.Fatalf("missing generated documents: %v", genBody)
	}
	if summary, _ := genBody["summary"].(string); summary != "Generated tailored resume for Staff Engineer at Acme" {
		t.Errorf("summary = %q", summary)
	}

	// Save a public version.
	resp, saveBody := postJSON(t, srv.URL+"/api/save-version", map[string]any{
		"title":      "Acme Application",
		"resumeHtml": resumeHTML,
		"coverHtml":  coverHTML,
		"fileId":     fileID,
		"jobId":      jobID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save-version status = %d, body %v", resp.StatusCode, saveBody)
	}
	versionID, _ := saveBody["versionId"].(string)
	token, _ := saveBody["publicToken"].(string)
	if versionID == "" || token == "" {
		t.Fatalf("missing version id or token: %v", saveBody)
	}

	// Public share page.
	resp, err = http.Get(srv.URL + "/s/" + token)
	if err != nil {
		t.Fatalf("GET share page: %v", err)
	}
	pageBytes := new(bytes.Buffer)
	pageBytes.ReadFrom(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("share page status = %d", resp.StatusCode)
	}
	if !strings.Contains(pageBytes.String(), "Acme Application") {
		t.Errorf("share page missing title")
	}

	// Record a view and check the counter.
	resp, viewBody := postJSON(t, srv.URL+"/api/metrics/view", map[string]any{
		"versionId": versionID,
		"sessionId": "sess-1",
	})
	if resp.StatusCode != http.StatusOK || viewBody["success"] != true {
		t.Fatalf("metrics/view = %d %v", resp.StatusCode, viewBody)
	}

	resp, err = http.Get(srv.URL + "/api/version/" + versionID)
	if err != nil {
		t.Fatalf("GET version: %v", err)
	}
	versionBody := decodeJSON(t, resp)
	if views, _ := versionBody["views"].(float64); views != 1 {
		t.Errorf("views = %v, want 1", versionBody["views"])
	}

	// Delete and verify it is gone.
	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/version/"+versionID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE version: %v", err)
	}
	delBody := decodeJSON(t, resp)
	if resp.StatusCode != http.StatusOK || delBody["success"] != true {
		t.Fatalf("delete = %d %v", resp.StatusCode, delBody)
	}

	resp, err = http.Get(srv.URL + "/api/version/" + versionID)
	if err != nil {
		t.Fatalf("GET deleted version: %v", err)
	}
	goneBody := decodeJSON(t, resp)
	if resp.StatusCode != http.StatusNotFound || goneBody["error"] != "Version not found" {
		t.Errorf("deleted version = %d %v", resp.StatusCode, goneBody)
	}
}

func TestErrorShapes(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/generate", map[string]any{})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("generate without sources = %d", resp.StatusCode)
	}
	if body["error"] != "Either fileId or resumeText must be provided" {
		t.Errorf("error = %v", body["error"])
	}

	resp, body = postJSON(t, srv.URL+"/api/fetch-job", map[string]any{"jobText": "short"})
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "Job text is too short" {
		t.Errorf("fetch-job short text = %d %v", resp.StatusCode, body)
	}

	resp, body = postJSON(t, srv.URL+"/api/redact", map[string]any{})
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "HTML content is required" {
		t.Errorf("redact without html = %d %v", resp.StatusCode, body)
	}

	resp, body = postJSON(t, srv.URL+"/api/metrics/view", map[string]any{})
	if resp.StatusCode != http.StatusBadRequest || body["error"] != "versionId is required" {
		t.Errorf("view without versionId = %d %v", resp.StatusCode, body)
	}

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/generate", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT generate: %v", err)
	}
	body = decodeJSON(t, resp)
	if resp.StatusCode != http.StatusMethodNotAllowed || body["error"] != "Method not allowed" {
		t.Errorf("method not allowed = %d %v", resp.StatusCode, body)
	}
}

func TestRedactEndpoint(t *testing.T) {
	srv := newTestServer(t)
	resp, body := postJSON(t, srv.URL+"/api/redact", map[string]any{
		"html": "<p>jane@example.com or (555) 123-4567</p>",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("redact = %d %v", resp.StatusCode, body)
	}
	redacted, _ := body["redactedHtml"].(string)
	if strings.Contains(redacted, "jane@example.com") || strings.Contains(redacted, "555") {
		t.Errorf("contact details survived: %q", redacted)
	}
	if body["method"] != "regex" {
		t.Errorf("method = %v, want regex without credentials", body["method"])
	}
}

func TestRedactEndpointOptions(t *testing.T) {
	srv := newTestServer(t)
	resp, body := postJSON(t, srv.URL+"/api/redact", map[string]any{
		"html": "<p>jane@example.com at 1 Main Street</p>",
		"options": map[string]any{
			"redactEmails":    false,
			"redactAddresses": true,
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("redact = %d %v", resp.StatusCode, body)
	}
	redacted, _ := body["redactedHtml"].(string)
	if !strings.Contains(redacted, "jane@example.com") {
		t.Errorf("email redacted despite opt-out: %q", redacted)
	}
	if !strings.Contains(redacted, "[address]") {
		t.Errorf("address not redacted: %q", redacted)
	}
}

func TestShareTokenUnknown(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/s/doesnotexist")
	if err != nil {
		t.Fatalf("GET share: %v", err)
	}
	defer resp.Body.Close()
	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200 with the not-found body", resp.StatusCode)
	}
	if !strings.Contains(buf.String(), "Resume Not Found") {
		t.Errorf("missing not-found page")
	}
}
