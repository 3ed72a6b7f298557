package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/logging"
	"resumeforge/internal/store"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// SaveResumeHandler persists a document under the user's key.
func SaveResumeHandler(resumes *store.ResumeStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.SaveResumeRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if err := requestValidator.Struct(&req); err != nil {
			return validationError(c, err)
		}

		env, err := resumes.Create(c.Request().Context(), req.UserID, req.Name, req.Document)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusCreated, env)
	}
}

// ListResumesHandler returns all of a user's saved resumes, newest first.
func ListResumesHandler(resumes *store.ResumeStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Param("user")
		envelopes, err := resumes.List(c.Request().Context(), userID)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, envelopes)
	}
}

// GetResumeHandler fetches one saved resume and bumps its view counter.
func GetResumeHandler(resumes *store.ResumeStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Param("user")
		resumeID := c.Param("id")

		env, err := resumes.Get(c.Request().Context(), userID, resumeID)
		if err != nil {
			return storeError(c, err)
		}

		if err := resumes.IncrementViews(c.Request().Context(), userID, resumeID); err != nil {
			logging.GetGlobalLogger().Warn("Failed to bump view counter", map[string]interface{}{
				"resume_id": resumeID,
				"error":     err.Error(),
			})
		} else {
			env.Views++
		}
		return c.JSON(http.StatusOK, env)
	}
}

// UpdateResumeHandler replaces a stored document, keeping its metadata.
func UpdateResumeHandler(resumes *store.ResumeStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Param("user")
		resumeID := c.Param("id")

		var req models.SaveResumeRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if req.Document == nil {
			return errorJSON(c, http.StatusBadRequest, "missing_document", "document is required")
		}

		env, err := resumes.Update(c.Request().Context(), userID, resumeID, req.Document)
		if err != nil {
			return storeError(c, err)
		}
		return c.JSON(http.StatusOK, env)
	}
}

// DeleteResumeHandler removes a stored resume.
func DeleteResumeHandler(resumes *store.ResumeStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Param("user")
		resumeID := c.Param("id")

		if err := resumes.Delete(c.Request().Context(), userID, resumeID); err != nil {
			return storeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// DownloadedResumeHandler bumps the download counter after a client-side
// export of a stored resume.
func DownloadedResumeHandler(resumes *store.ResumeStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID := c.Param("user")
		resumeID := c.Param("id")

		if err := resumes.IncrementDownloads(c.Request().Context(), userID, resumeID); err != nil {
			return storeError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func storeError(c echo.Context, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errorFrom(c, "resume_not_found", utils.NewNotFoundError("No such resume"))
	}
	logging.GetGlobalLogger().Error("Resume store operation failed", map[string]interface{}{
		"request_id": requestID(c),
		"error":      err.Error(),
	})
	return errorFrom(c, "store_error", utils.NewInternalServerError("Resume store unavailable"))
}
