package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/remote"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// GenerateResumeHandler submits a document to the remote generation service
// and returns the rendered HTML.
func GenerateResumeHandler(client *remote.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.GenerateResumeRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if err := requestValidator.Struct(&req); err != nil {
			return validationError(c, err)
		}

		// Defaults mirror the combined save-and-generate flow
		opts := req.Options
		if opts == nil {
			opts = &models.GenerateOptions{ATSOptimization: true}
		}
		opts.KeywordDensity = utils.GetStringOrDefault(opts.KeywordDensity, "medium")

		html, err := client.GenerateATSResume(c.Request().Context(), sessionFromHeader(c), req.Document, opts)
		if err != nil {
			return remoteError(c, err, "Failed to generate resume")
		}

		return c.JSON(http.StatusOK, models.GenerateResumeResponse{
			Success: true,
			HTML:    html,
			Message: "Resume generated successfully",
		})
	}
}

// UploadResumeHandler pushes a document to the backend's public resume
// endpoint without requiring auth.
func UploadResumeHandler(client *remote.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.SaveResumeRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if req.Document == nil {
			return errorJSON(c, http.StatusBadRequest, "missing_document", "document is required")
		}

		if err := client.UploadResume(c.Request().Context(), req.Document, req.UserID); err != nil {
			return remoteError(c, err, "Failed to upload resume")
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "uploaded"})
	}
}
