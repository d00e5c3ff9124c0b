package export

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-tailor-backend/internal/shared/server/respond"
	"resume-tailor-backend/internal/shared/storage/object"
	"resume-tailor-backend/internal/shared/telemetry"
	"resume-tailor-backend/internal/shared/util"
)

const (
	exportBucket   = "exports"
	urlExpiry      = time.Hour
	defaultTitle   = "resume"
	pdfContentType = "application/pdf"
)

// Handler exposes PDF export over HTTP.
type Handler struct {
	Renderer Renderer
	Store    object.ObjectStore
}

// ExportRequest is the body of an export call.
type ExportRequest struct {
	HTML  string `json:"html"`
	Title string `json:"title"`
}

// ExportResponse carries a time-limited download URL.
type ExportResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// RegisterRoutes wires the export route onto the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/export", h.export)
}

func (h *Handler) export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.HTML) == "" {
		respond.Error(c, http.StatusBadRequest, "HTML content is required")
		return
	}

	ctx := c.Request.Context()
	pdf, err := h.Renderer.RenderPDF(ctx, req.HTML)
	if err != nil {
		telemetry.Error("export.render.failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	path := uuid.NewString() + ".pdf"
	if _, err := h.Store.Upload(ctx, exportBucket, path, pdf, pdfContentType); err != nil {
		telemetry.Error("export.upload.failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	url, err := h.Store.SignedURL(ctx, exportBucket, path, urlExpiry)
	if err != nil {
		telemetry.Error("export.sign.failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	respond.OK(c, ExportResponse{
		URL:      url,
		Filename: downloadFilename(req.Title),
	})
}

func downloadFilename(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return defaultTitle + ".pdf"
	}
	if safe, err := util.SanitizeFileName(title); err == nil && safe != "" {
		return safe + ".pdf"
	}
	return defaultTitle + ".pdf"
}
