package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"resumeforge/internal/api/handlers"
	"resumeforge/internal/api/middleware"
	"resumeforge/internal/builder"
	"resumeforge/internal/config"
	"resumeforge/internal/export"
	"resumeforge/internal/remote"
	"resumeforge/internal/store"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, sessions *builder.SessionManager, exporter *export.Service, client *remote.Client, resumes *store.ResumeStore) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig(cfg))
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(resumes, sessions))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler(resumes, sessions))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		// Draft editing sessions
		drafts := v1.Group("/drafts")
		{
			drafts.POST("", handlers.CreateDraftHandler(sessions))
			drafts.GET("/:id", handlers.GetDraftHandler(sessions))
			drafts.DELETE("/:id", handlers.DeleteDraftHandler(sessions))
			drafts.PUT("/:id/field", handlers.UpdateFieldHandler(sessions))
			drafts.POST("/:id/array", handlers.PatchArrayHandler(sessions))
			drafts.POST("/:id/visibility", handlers.VisibilityHandler(sessions))
			drafts.POST("/:id/validate", handlers.ValidateDraftHandler(sessions))
			drafts.POST("/:id/validate/:section", handlers.ValidateSectionHandler(sessions))
			drafts.POST("/:id/reset", handlers.ResetDraftHandler(sessions))
		}

		// Exports hold a browser, so they get their own rate limit and the
		// longer timeout
		exports := v1.Group("/export",
			middleware.ExportRateLimit(cfg.Export.RateLimit),
			middleware.TimeoutConfig(cfg.Export.Timeout),
		)
		{
			exports.POST("/pdf", handlers.ExportPDFHandler(exporter, sessions))
			exports.POST("/docx", handlers.ExportWordHandler(exporter, sessions))
			exports.POST("/text", handlers.ExportTextHandler(exporter, sessions))
		}

		// Remote account and generation facade
		auth := v1.Group("/auth")
		{
			auth.POST("/login", handlers.LoginHandler(client))
			auth.POST("/register", handlers.RegisterHandler(client))
			auth.GET("/me", handlers.CurrentUserHandler(client))
		}

		v1.POST("/upload", handlers.UploadResumeHandler(client))

		// Certificates: generation and save need a bearer token, fetch is
		// public
		certs := v1.Group("/certificates")
		{
			certs.POST("/generate", handlers.GenerateCertificateHandler(client))
			certs.POST("", handlers.SaveCertificateHandler(client))
			certs.GET("/:id", handlers.FetchCertificateHandler(client))
		}

		// Saved resumes
		resumeGroup := v1.Group("/resumes")
		{
			resumeGroup.POST("/generate", handlers.GenerateResumeHandler(client))
			resumeGroup.POST("", handlers.SaveResumeHandler(resumes))
			resumeGroup.GET("/:user", handlers.ListResumesHandler(resumes))
			resumeGroup.GET("/:user/:id", handlers.GetResumeHandler(resumes))
			resumeGroup.PUT("/:user/:id", handlers.UpdateResumeHandler(resumes))
			resumeGroup.DELETE("/:user/:id", handlers.DeleteResumeHandler(resumes))
			resumeGroup.POST("/:user/:id/downloaded", handlers.DownloadedResumeHandler(resumes))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "ResumeForge",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
