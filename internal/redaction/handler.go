package redaction

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/shared/server/respond"
)

// Handler exposes standalone redaction over HTTP.
type Handler struct {
	Redactor *Redactor
}

// RedactRequest is the body of a redaction call.
type RedactRequest struct {
	HTML    string          `json:"html"`
	Options *OptionsRequest `json:"options"`
}

// OptionsRequest mirrors the optional per-call redaction switches.
type OptionsRequest struct {
	RedactEmails    *bool `json:"redactEmails"`
	RedactPhones    *bool `json:"redactPhones"`
	RedactAddresses bool  `json:"redactAddresses"`
}

// RedactResponse is the payload returned after redaction.
type RedactResponse struct {
	RedactedHTML string `json:"redactedHtml"`
	Method       string `json:"method"`
}

// RegisterRoutes wires the redaction route onto the router.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/redact", h.redact)
}

func (h *Handler) redact(c *gin.Context) {
	var req RedactRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.HTML) == "" {
		respond.Error(c, http.StatusBadRequest, "HTML content is required")
		return
	}

	var opts Options
	if req.Options != nil {
		opts = Options{
			RedactEmails:    req.Options.RedactEmails,
			RedactPhones:    req.Options.RedactPhones,
			RedactAddresses: req.Options.RedactAddresses,
		}
	}

	result := h.Redactor.Redact(c.Request.Context(), req.HTML, opts)
	respond.OK(c, RedactResponse{
		RedactedHTML: result.RedactedHTML,
		Method:       result.Method,
	})
}
