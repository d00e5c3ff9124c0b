package server

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/export"
	"resume-tailor-backend/internal/files"
	"resume-tailor-backend/internal/generation"
	"resume-tailor-backend/internal/jobs"
	"resume-tailor-backend/internal/redaction"
	"resume-tailor-backend/internal/shared/server/middleware"
	"resume-tailor-backend/internal/shared/server/respond"
	"resume-tailor-backend/internal/shared/storage/object/local"
	"resume-tailor-backend/internal/versions"
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	CORSAllowOrigins []string

	Files      *files.Handler
	Jobs       *jobs.Handler
	Generation *generation.Handler
	Redaction  *redaction.Handler
	Versions   *versions.Handler
	SharePage  *versions.PageHandler
	Export     *export.Handler

	// LocalStore enables the file-serving route; nil when S3 serves
	// downloads through presigned URLs.
	LocalStore *local.Store
}

// NewRouter assembles the gin engine with middleware and all routes.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(deps.CORSAllowOrigins))

	r.NoMethod(func(c *gin.Context) {
		respond.Error(c, http.StatusMethodNotAllowed, "Method not allowed")
	})
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "Not found")
	})

	r.GET("/api/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "ok"})
	})

	deps.Files.RegisterRoutes(r)
	deps.Jobs.RegisterRoutes(r)
	deps.Generation.RegisterRoutes(r)
	deps.Redaction.RegisterRoutes(r)
	deps.Versions.RegisterRoutes(r)
	deps.SharePage.RegisterRoutes(r)
	deps.Export.RegisterRoutes(r)

	if deps.LocalStore != nil {
		r.GET("/api/files/:bucket/*path", serveLocalFile(deps.LocalStore))
	}

	return r
}

// serveLocalFile streams objects from the local store. S3 deployments never
// register this route.
func serveLocalFile(store *local.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		bucket := c.Param("bucket")
		path := strings.TrimPrefix(c.Param("path"), "/")

		data, err := store.Open(bucket, path)
		if err != nil {
			respond.Error(c, http.StatusNotFound, "File not found")
			return
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c.Data(http.StatusOK, contentType, data)
	}
}
