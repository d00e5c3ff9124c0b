package versions

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/shared/server/respond"
	"resume-tailor-backend/internal/shared/telemetry"
)

// Handler exposes version management and view tracking over HTTP.
type Handler struct {
	Service *Service
}

// SaveRequest is the body of a save call.
type SaveRequest struct {
	Title      string `json:"title"`
	ResumeHTML string `json:"resumeHtml"`
	CoverHTML  string `json:"coverHtml"`
	IsPublic   *bool  `json:"isPublic"`
	FileID     string `json:"fileId"`
	JobID      string `json:"jobId"`
}

// SaveResponse is the payload returned after a successful save.
type SaveResponse struct {
	VersionID   string   `json:"versionId"`
	PublicToken string   `json:"publicToken"`
	Title       string   `json:"title"`
	IsPublic    bool     `json:"isPublic"`
	Warnings    []string `json:"warnings,omitempty"`
}

// VersionResponse is the full version payload.
type VersionResponse struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	ResumeHTML         string    `json:"resumeHtml"`
	CoverHTML          string    `json:"coverHtml"`
	RedactedResumeHTML string    `json:"redactedResumeHtml"`
	RedactedCoverHTML  string    `json:"redactedCoverHtml"`
	PublicToken        string    `json:"publicToken"`
	Views              int64     `json:"views"`
	IsPublic           bool      `json:"isPublic"`
	FileID             *string   `json:"fileId"`
	JobID              *string   `json:"jobId"`
	CreatedAt          time.Time `json:"createdAt"`
}

// ViewRequest is the body of a view tracking call.
type ViewRequest struct {
	VersionID string `json:"versionId"`
	SessionID string `json:"sessionId"`
	Referrer  string `json:"referrer"`
	UserAgent string `json:"userAgent"`
}

// ViewResponse acknowledges a recorded view.
type ViewResponse struct {
	Success  bool     `json:"success"`
	ViewID   string   `json:"viewId"`
	Warnings []string `json:"warnings,omitempty"`
}

// RegisterRoutes wires the version routes onto the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/save-version", h.save)
	r.GET("/api/version/:id", h.get)
	r.DELETE("/api/version/:id", h.delete)
	r.POST("/api/metrics/view", h.recordView)
}

func (h *Handler) save(c *gin.Context) {
	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Title, resumeHtml, and coverHtml are required")
		return
	}

	result, err := h.Service.Save(c.Request.Context(), SaveInput{
		Title:      req.Title,
		ResumeHTML: req.ResumeHTML,
		CoverHTML:  req.CoverHTML,
		IsPublic:   req.IsPublic,
		FileID:     req.FileID,
		JobID:      req.JobID,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "Title, resumeHtml, and coverHtml are required")
			return
		}
		telemetry.Error("version.save.failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "Failed to save version")
		return
	}

	respond.OK(c, SaveResponse{
		VersionID:   result.VersionID,
		PublicToken: result.PublicToken,
		Title:       result.Title,
		IsPublic:    result.IsPublic,
		Warnings:    result.Warnings,
	})
}

func (h *Handler) get(c *gin.Context) {
	v, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusNotFound, "Version not found")
			return
		}
		telemetry.Error("version.get.failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "Failed to load version")
		return
	}

	respond.OK(c, VersionResponse{
		ID:                 v.ID,
		Title:              v.Title,
		ResumeHTML:         v.ResumeHTML,
		CoverHTML:          v.CoverHTML,
		RedactedResumeHTML: v.RedactedResumeHTML,
		RedactedCoverHTML:  v.RedactedCoverHTML,
		PublicToken:        v.PublicToken,
		Views:              v.Views,
		IsPublic:           v.IsPublic,
		FileID:             v.FileID,
		JobID:              v.JobID,
		CreatedAt:          v.CreatedAt,
	})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.Service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusNotFound, "Version not found")
			return
		}
		telemetry.Error("version.delete.failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "Failed to delete version")
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) recordView(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.VersionID == "" {
		respond.Error(c, http.StatusBadRequest, "versionId is required")
		return
	}

	// The body field wins over the transport header so relayed beacons
	// record the viewer's agent, not the relay's.
	userAgent := req.UserAgent
	if userAgent == "" {
		userAgent = c.Request.UserAgent()
	}

	result, err := h.Service.RecordView(c.Request.Context(), ViewInput{
		VersionID: req.VersionID,
		SessionID: req.SessionID,
		Referrer:  req.Referrer,
		UserAgent: userAgent,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "versionId is required")
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "Version not found")
		default:
			telemetry.Error("version.view.failed", map[string]any{"error": err.Error()})
			respond.Error(c, http.StatusInternalServerError, "Failed to record view")
		}
		return
	}

	respond.OK(c, ViewResponse{
		Success:  true,
		ViewID:   result.ViewID,
		Warnings: result.Warnings,
	})
}
