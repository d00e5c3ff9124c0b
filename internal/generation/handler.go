package generation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/files"
	"resume-tailor-backend/internal/jobs"
	"resume-tailor-backend/internal/shared/server/respond"
	"resume-tailor-backend/internal/shared/telemetry"
)

// Handler exposes document generation over HTTP.
type Handler struct {
	Service *Service
}

// GenerateRequest selects the resume and job sources for one generation call.
type GenerateRequest struct {
	FileID     string `json:"fileId"`
	ResumeText string `json:"resumeText"`
	JobID      string `json:"jobId"`
	JobText    string `json:"jobText"`
}

// GenerateResponse carries the generated documents.
type GenerateResponse struct {
	TailoredResumeHTML string `json:"tailoredResumeHtml"`
	CoverLetterHTML    string `json:"coverLetterHtml"`
	Summary            string `json:"summary"`
}

// RegisterRoutes wires the generation route onto the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/generate", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Either fileId or resumeText must be provided")
		return
	}

	out, err := h.Service.Generate(c.Request.Context(), Input{
		FileID:     req.FileID,
		ResumeText: req.ResumeText,
		JobID:      req.JobID,
		JobText:    req.JobText,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingResume):
			respond.Error(c, http.StatusBadRequest, "Either fileId or resumeText must be provided")
		case errors.Is(err, ErrMissingJob):
			respond.Error(c, http.StatusBadRequest, "Either jobId or jobText must be provided")
		case errors.Is(err, files.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "File not found")
		case errors.Is(err, jobs.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "Job not found")
		default:
			telemetry.Error("generation.failed", map[string]any{"error": err.Error()})
			respond.Error(c, http.StatusInternalServerError, "Failed to generate resume")
		}
		return
	}

	respond.OK(c, GenerateResponse{
		TailoredResumeHTML: out.TailoredResumeHTML,
		CoverLetterHTML:    out.CoverLetterHTML,
		Summary:            out.Summary,
	})
}
