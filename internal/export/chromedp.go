package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const renderTimeout = 30 * time.Second

// Page dimensions in inches for A4 with 20mm vertical and 15mm horizontal
// margins.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
	marginVertical = 0.79
	marginSide     = 0.59
)

// ChromeRenderer renders PDFs with a headless Chrome instance. Each call
// spawns a fresh browser context; the binary must be on PATH.
type ChromeRenderer struct {
	// ExecPath overrides the browser binary location when set.
	ExecPath string
}

// RenderPDF wraps the fragment in a print stylesheet and runs Chrome's
// print-to-PDF.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, htmlContent string) ([]byte, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelTimeout()

	doc := printDocument(htmlContent)

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, doc).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithMarginTop(marginVertical).
				WithMarginBottom(marginVertical).
				WithMarginLeft(marginSide).
				WithMarginRight(marginSide).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return pdf, nil
}

func printDocument(fragment string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>")
	b.WriteString(pdfStyles)
	b.WriteString("</style></head><body>")
	b.WriteString(fragment)
	b.WriteString("</body></html>")
	return b.String()
}

const pdfStyles = `
body {
  font-family: Georgia, 'Times New Roman', serif;
  font-size: 11pt;
  line-height: 1.4;
  color: #1a1a1a;
}
h1 { font-size: 18pt; margin-bottom: 4pt; }
h2 { font-size: 13pt; margin-top: 12pt; margin-bottom: 4pt; border-bottom: 1pt solid #ccc; padding-bottom: 2pt; }
h3 { font-size: 11.5pt; margin-top: 8pt; margin-bottom: 2pt; }
p { margin: 4pt 0; }
ul { margin: 4pt 0; padding-left: 16pt; }
li { margin: 2pt 0; }
a { color: #1a1a1a; text-decoration: none; }
`

var _ Renderer = (*ChromeRenderer)(nil)
