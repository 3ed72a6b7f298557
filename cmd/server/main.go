package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/api/routes"
	"resumeforge/internal/builder"
	"resumeforge/internal/config"
	"resumeforge/internal/export"
	"resumeforge/internal/logging"
	"resumeforge/internal/remote"
	"resumeforge/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseGlobalLogger()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting ResumeForge server")

	// Resume store
	resumes := store.NewResumeStore(cfg)
	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
	if err := resumes.Ping(pingCtx); err != nil {
		logger.Warn("Redis not reachable at startup, saved resumes unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}
	pingCancel()

	// Draft editing sessions
	sessions := builder.NewSessionManager(cfg)
	sessions.Start()

	// Export pipeline and remote backend facade
	exporter := export.NewService(cfg)
	client := remote.NewClient(cfg)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	routes.SetupRoutes(e, cfg, sessions, exporter, client, resumes)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		logger.Info("Stopping draft sessions...")
		sessions.Stop()

		logger.Info("Closing export browser...")
		if err := exporter.Close(); err != nil {
			logger.Error("Error closing export browser", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Closing resume store...")
		if err := resumes.Close(); err != nil {
			logger.Error("Error closing resume store", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
