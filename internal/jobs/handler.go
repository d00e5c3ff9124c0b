package jobs

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/shared/server/respond"
	"resume-tailor-backend/internal/shared/telemetry"
	"resume-tailor-backend/internal/shared/util"
)

const contentPreviewLimit = 200

// Handler exposes job intake over HTTP.
type Handler struct {
	Service *Service
}

// RegisterRoutes wires the job routes onto the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/fetch-job", h.fetchJob)
}

func (h *Handler) fetchJob(c *gin.Context) {
	var req IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Either jobUrl or jobText must be provided")
		return
	}

	result, err := h.Service.Intake(c.Request.Context(), IntakeInput{
		JobURL:  req.JobURL,
		JobText: req.JobText,
		Title:   req.Title,
		Company: req.Company,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			if strings.Contains(err.Error(), "too short") {
				respond.Error(c, http.StatusBadRequest, "Job text is too short")
				return
			}
			respond.Error(c, http.StatusBadRequest, "Either jobUrl or jobText must be provided")
		case errors.Is(err, ErrFetchFailed):
			respond.Error(c, http.StatusInternalServerError, "Failed to fetch job posting. Please paste the job description instead")
		default:
			telemetry.Error("job.intake.failed", map[string]any{"error": err.Error()})
			respond.Error(c, http.StatusInternalServerError, "Failed to save job posting")
		}
		return
	}

	respond.OK(c, IntakeResponse{
		JobID:          result.JobID,
		Title:          result.Title,
		Company:        result.Company,
		URL:            result.URL,
		ContentPreview: util.Preview(result.Content, contentPreviewLimit),
	})
}
