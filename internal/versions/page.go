package versions

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/shared/telemetry"
)

// PageHandler serves the public share page for a version.
type PageHandler struct {
	Service *Service
}

// RegisterRoutes wires the share page onto the router.
func (h *PageHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/s/:token", h.show)
}

func (h *PageHandler) show(c *gin.Context) {
	v, err := h.Service.GetShared(c.Request.Context(), c.Param("token"))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			telemetry.Error("share.load.failed", map[string]any{"error": err.Error()})
		}
		// Invalid and private tokens render the same page as a normal 200;
		// the share surface never distinguishes the two.
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, notFoundPage)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err = sharePage.Execute(c.Writer, shareData{
		Title:      v.Title,
		ResumeHTML: template.HTML(v.RedactedResumeHTML),
		CoverHTML:  template.HTML(v.RedactedCoverHTML),
		VersionID:  v.ID,
		Views:      v.Views,
		CreatedAt:  v.CreatedAt.Format("January 2, 2006"),
	})
	if err != nil {
		telemetry.Error("share.render.failed", map[string]any{"error": err.Error()})
	}
}

type shareData struct {
	Title      string
	ResumeHTML template.HTML
	CoverHTML  template.HTML
	VersionID  string
	Views      int64
	CreatedAt  string
}

var sharePage = template.Must(template.New("share").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
  body { font-family: Georgia, 'Times New Roman', serif; margin: 0; background: #f5f5f5; color: #1a1a1a; }
  .page { max-width: 800px; margin: 0 auto; padding: 40px 24px; }
  .meta { color: #666; font-size: 14px; margin-bottom: 32px; }
  .card { background: #fff; border-radius: 8px; padding: 32px; margin-bottom: 24px; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
  .card h2 { margin-top: 0; font-size: 18px; border-bottom: 1px solid #eee; padding-bottom: 12px; }
  h1, h2, h3 { color: #1a1a1a; }
</style>
</head>
<body>
<div class="page">
  <h1>{{.Title}}</h1>
  <p class="meta">Saved {{.CreatedAt}} &middot; {{.Views}} views</p>
  <div class="card">
    <h2>Resume</h2>
    {{.ResumeHTML}}
  </div>
  <div class="card">
    <h2>Cover Letter</h2>
    {{.CoverHTML}}
  </div>
</div>
<script>
(function () {
  var key = 'share_session';
  var sessionId = '';
  try {
    sessionId = sessionStorage.getItem(key) || '';
    if (!sessionId) {
      sessionId = Math.random().toString(36).slice(2, 12);
      sessionStorage.setItem(key, sessionId);
    }
  } catch (e) {}
  fetch('/api/metrics/view', {
    method: 'POST',
    headers: { 'Content-Type': 'application/json' },
    body: JSON.stringify({
      versionId: {{.VersionID}},
      sessionId: sessionId,
      referrer: document.referrer,
      userAgent: navigator.userAgent
    })
  }).catch(function () {});
})();
</script>
</body>
</html>
`))

const notFoundPage = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Resume Not Found</title>
<style>
  body { font-family: Georgia, 'Times New Roman', serif; background: #f5f5f5; color: #1a1a1a; }
  .page { max-width: 600px; margin: 80px auto; padding: 24px; text-align: center; }
  p { color: #666; }
</style>
</head>
<body>
<div class="page">
  <h1>Resume Not Found</h1>
  <p>This resume does not exist or is no longer shared.</p>
</div>
</body>
</html>
`
