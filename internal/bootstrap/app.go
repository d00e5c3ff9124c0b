package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"resume-tailor-backend/internal/export"
	"resume-tailor-backend/internal/files"
	"resume-tailor-backend/internal/gemini"
	"resume-tailor-backend/internal/generation"
	"resume-tailor-backend/internal/jobs"
	"resume-tailor-backend/internal/redaction"
	"resume-tailor-backend/internal/shared/config"
	"resume-tailor-backend/internal/shared/server"
	"resume-tailor-backend/internal/shared/storage/db"
	"resume-tailor-backend/internal/shared/storage/object"
	"resume-tailor-backend/internal/shared/storage/object/local"
	"resume-tailor-backend/internal/shared/storage/object/s3"
	"resume-tailor-backend/internal/shared/telemetry"
	"resume-tailor-backend/internal/versions"
)

// App is the assembled application.
type App struct {
	Router *gin.Engine
	DB     *sql.DB
}

// Close releases held resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Build wires repositories, services and handlers from configuration.
// Without a database URL the app runs on in-memory repositories, which is
// enough for local development and tests.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var (
		fileRepo    files.Repo
		jobRepo     jobs.Repo
		versionRepo versions.Repo
	)
	if database != nil {
		fileRepo = &files.PGRepo{DB: database}
		jobRepo = &jobs.PGRepo{DB: database}
		versionRepo = &versions.PGRepo{DB: database}
	} else {
		fileRepo = files.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		versionRepo = versions.NewMemoryRepo()
	}

	store, localStore, err := openObjectStore(ctx, cfg)
	if err != nil {
		if database != nil {
			database.Close()
		}
		return nil, err
	}

	client := gemini.NewClient(gemini.Config{
		APIKey:             cfg.GeminiAPIKey,
		ServiceAccountPath: cfg.ServiceAccountPath,
		Model:              cfg.GeminiModel,
	})
	complete := gemini.CompletionFunc(client.GenerateCompletion)

	fileService := &files.Service{Repo: fileRepo, Store: store}
	jobService := &jobs.Service{Repo: jobRepo, Fetcher: jobs.NewFetcher()}
	redactor := &redaction.Redactor{Complete: complete}
	generationService := &generation.Service{
		Files:    fileService,
		Jobs:     jobService,
		Complete: complete,
		Fallback: cfg.GenerationFallback,
	}
	versionService := &versions.Service{Repo: versionRepo, Redactor: redactor}

	router := server.NewRouter(server.RouterDeps{
		CORSAllowOrigins: cfg.CORSAllowOrigin,
		Files:            &files.Handler{Service: fileService},
		Jobs:             &jobs.Handler{Service: jobService},
		Generation:       &generation.Handler{Service: generationService},
		Redaction:        &redaction.Handler{Redactor: redactor},
		Versions:         &versions.Handler{Service: versionService},
		SharePage:        &versions.PageHandler{Service: versionService},
		Export:           &export.Handler{Renderer: &export.ChromeRenderer{}, Store: store},
		LocalStore:       localStore,
	})

	return &App{Router: router, DB: database}, nil
}

func openDatabase(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.DatabaseURL == "" {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("DATABASE_URL is required in production")
		}
		telemetry.Warn("bootstrap.memory_repos", map[string]any{
			"reason": "DATABASE_URL not set",
		})
		return nil, nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions())
	if err != nil {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		telemetry.Warn("bootstrap.memory_repos", map[string]any{
			"reason": "database unreachable",
			"error":  err.Error(),
		})
		return nil, nil
	}
	return database, nil
}

func openObjectStore(ctx context.Context, cfg config.Config) (object.ObjectStore, *local.Store, error) {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("init s3 store: %w", err)
		}
		return store, nil, nil
	}
	localStore := local.New(cfg.LocalStoreDir, cfg.AppBaseURL)
	return localStore, localStore, nil
}
