package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/builder"
	"resumeforge/internal/logging"
	"resumeforge/internal/store"
	"resumeforge/pkg/models"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logger := logging.GetGlobalLogger()
	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestID(c)})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler handles readiness probe requests, checking the resume
// store connection and reporting draft session load.
func ReadinessHandler(resumes *store.ResumeStore, sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api":            "ok",
			"redis":          "ok",
			"draft_sessions": fmt.Sprintf("%d", sessions.Count()),
		}
		status := "ready"
		httpStatus := http.StatusOK

		if err := resumes.Ping(c.Request().Context()); err != nil {
			checks["redis"] = err.Error()
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		response := models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		}

		return c.JSON(httpStatus, response)
	}
}

// StatusHandler provides detailed service status
func StatusHandler(resumes *store.ResumeStore, sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api":            "operational",
			"redis":          "operational",
			"draft_sessions": fmt.Sprintf("%d", sessions.Count()),
		}
		status := "operational"
		if err := resumes.Ping(c.Request().Context()); err != nil {
			checks["redis"] = "unavailable"
			status = "degraded"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}
	return c.JSON(http.StatusOK, response)
}
