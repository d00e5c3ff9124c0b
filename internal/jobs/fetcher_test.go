package jobs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testJobPage = `<!DOCTYPE html>
<html>
<head>
<title>ignored head title</title>
<style>body { color: red; }</style>
<script>window.tracker = true;</script>
</head>
<body>
<h1>Staff Engineer</h1>
<p>Acme Corp is looking for a Staff Engineer to lead the platform team.</p>
<ul>
<li>10+ years building backend systems</li>
<li>Deep experience with Go and PostgreSQL</li>
</ul>
<noscript>Please enable JavaScript</noscript>
</body>
</html>`

func TestFetchExtractsText(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(testJobPage))
	}))
	defer srv.Close()

	fetched, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if gotUA != "Mozilla/5.0 (compatible; ResumeBot/1.0)" {
		t.Errorf("user agent = %q", gotUA)
	}
	if !strings.Contains(fetched.Content, "Staff Engineer") {
		t.Errorf("content missing heading: %q", fetched.Content)
	}
	if !strings.Contains(fetched.Content, "Go and PostgreSQL") {
		t.Errorf("content missing list item: %q", fetched.Content)
	}
	if strings.Contains(fetched.Content, "window.tracker") {
		t.Errorf("script leaked into content")
	}
	if strings.Contains(fetched.Content, "color: red") {
		t.Errorf("style leaked into content")
	}
	if strings.Contains(fetched.Content, "enable JavaScript") {
		t.Errorf("noscript leaked into content")
	}
	if strings.Contains(fetched.Content, "ignored head title") {
		t.Errorf("head leaked into content")
	}
	if fetched.Title != "Staff Engineer" {
		t.Errorf("title = %q", fetched.Title)
	}
}

func TestFetchTitleFromFirstLine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<body><h1>Senior Backend Engineer</h1><p>` + strings.Repeat("details about the role ", 20) + `</p></body>`))
	}))
	defer srv.Close()

	fetched, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if fetched.Title != "Senior Backend Engineer" {
		t.Errorf("title = %q", fetched.Title)
	}
}

func TestFetchTitleBounded(t *testing.T) {
	long := strings.Repeat("word ", 60)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<body><p>` + long + `</p></body>`))
	}))
	defer srv.Close()

	fetched, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(fetched.Title) > 100 {
		t.Errorf("title length = %d, want <= 100", len(fetched.Title))
	}
}

func TestFetchRejectsThinPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<body><p>tiny</p></body>`))
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}

func TestFetchRejectsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrFetchFailed) {
		t.Errorf("err = %v, want ErrFetchFailed", err)
	}
}
