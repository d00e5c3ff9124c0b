package export

import "context"

// Renderer turns an HTML fragment into a PDF document.
type Renderer interface {
	RenderPDF(ctx context.Context, htmlContent string) ([]byte, error)
}
