package jobs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	fetchUserAgent   = "Mozilla/5.0 (compatible; ResumeBot/1.0)"
	fetchTimeout     = 15 * time.Second
	maxFetchBytes    = 2 << 20
	minContentLength = 100
	maxTitleLength   = 100
)

// Fetcher retrieves a job posting page and reduces it to plain text.
type Fetcher struct {
	Client *http.Client
}

// NewFetcher constructs a Fetcher with a default HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{Client: &http.Client{Timeout: fetchTimeout}}
}

// FetchedJob is the text form of a fetched job posting.
type FetchedJob struct {
	Title   string
	Content string
}

// Fetch downloads the page at url and extracts its visible text. The result
// must contain at least 100 characters of content or the page is treated as
// unusable.
func (f *Fetcher) Fetch(ctx context.Context, url string) (FetchedJob, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FetchedJob{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return FetchedJob{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FetchedJob{}, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return FetchedJob{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	content := extractText(string(body))
	if len(content) < minContentLength {
		return FetchedJob{}, fmt.Errorf("%w: page contains too little text", ErrFetchFailed)
	}

	return FetchedJob{Title: firstLineTitle(content), Content: content}, nil
}

// extractText walks the HTML tree collecting text nodes, skipping script,
// style and noscript subtrees, and collapses runs of whitespace.
func extractText(page string) string {
	root, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return collapseWhitespace(page)
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "head", "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if n.Type == html.ElementNode && blockElement(n.Data) {
			b.WriteByte('\n')
		}
	}
	walk(root)

	lines := strings.Split(b.String(), "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = collapseWhitespace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}

func blockElement(tag string) bool {
	switch tag {
	case "p", "div", "br", "li", "tr", "section", "article", "header",
		"h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// firstLineTitle derives a title from the first non-empty line of content,
// bounded at 100 characters.
func firstLineTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if len(line) > maxTitleLength {
			return strings.TrimSpace(line[:maxTitleLength])
		}
		return line
	}
	return ""
}
