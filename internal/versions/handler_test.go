package versions

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/redaction"
)

func newHandlerFixture(t *testing.T) (*gin.Engine, *MemoryRepo, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Redactor: &redaction.Redactor{}}
	r := gin.New()
	(&Handler{Service: svc}).RegisterRoutes(r)

	saved, err := svc.Save(context.Background(), SaveInput{
		Title:      "t",
		ResumeHTML: "<p>r</p>",
		CoverHTML:  "<p>c</p>",
	})
	if err != nil {
		t.Fatalf("seed version: %v", err)
	}
	return r, repo, saved.VersionID
}

func postView(t *testing.T, router *gin.Engine, body map[string]any, header string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/metrics/view", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if header != "" {
		req.Header.Set("User-Agent", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRecordViewPrefersBodyUserAgent(t *testing.T) {
	router, repo, versionID := newHandlerFixture(t)

	w := postView(t, router, map[string]any{
		"versionId": versionID,
		"userAgent": "Viewer Browser/2.0",
	}, "Relay Proxy/1.0")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	views := repo.ViewsFor(versionID)
	if len(views) != 1 {
		t.Fatalf("recorded views = %d", len(views))
	}
	if views[0].UserAgent != "Viewer Browser/2.0" {
		t.Errorf("user agent = %q, want the body value", views[0].UserAgent)
	}
}

func TestRecordViewFallsBackToHeaderUserAgent(t *testing.T) {
	router, repo, versionID := newHandlerFixture(t)

	w := postView(t, router, map[string]any{"versionId": versionID}, "Direct Browser/3.0")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	views := repo.ViewsFor(versionID)
	if len(views) != 1 {
		t.Fatalf("recorded views = %d", len(views))
	}
	if views[0].UserAgent != "Direct Browser/3.0" {
		t.Errorf("user agent = %q, want the header value", views[0].UserAgent)
	}
}
