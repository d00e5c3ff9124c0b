package files

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/shared/server/respond"
	"resume-tailor-backend/internal/shared/telemetry"
	"resume-tailor-backend/internal/shared/util"
)

// MaxUploadBytes caps the accepted upload size at 10MB.
const MaxUploadBytes = 10 << 20

const textPreviewLimit = 200

// Handler exposes file upload over HTTP.
type Handler struct {
	Service *Service
}

// RegisterRoutes wires the file routes onto the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "No file provided")
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "File too large. Maximum size is 10MB")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to process file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to process file")
		return
	}

	result, err := h.Service.Upload(c.Request.Context(), UploadInput{
		Filename: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "Unsupported file type. Please upload PDF, DOCX, or TXT")
			return
		}
		telemetry.Error("upload.failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "Failed to process file")
		return
	}

	respond.OK(c, UploadResponse{
		FileID:      result.FileID,
		Filename:    result.Filename,
		Size:        result.SizeBytes,
		TextPreview: util.Preview(result.TextContent, textPreviewLimit),
	})
}
