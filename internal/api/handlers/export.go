package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/builder"
	"resumeforge/internal/export"
	"resumeforge/internal/logging"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// ExportPDFHandler captures the draft's preview page and returns the tiled
// PDF as a download.
func ExportPDFHandler(svc *export.Service, sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ExportRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if req.DraftID == "" {
			return errorJSON(c, http.StatusBadRequest, "missing_draft", "draft_id is required for PDF export")
		}
		if _, ok := sessions.Get(req.DraftID); !ok {
			return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
		}

		started := time.Now()
		artifact, err := svc.ExportPDF(c.Request().Context(), req.DraftID, req.FileName)
		if err != nil {
			return exportError(c, err)
		}
		return sendArtifact(c, artifact, started)
	}
}

// ExportWordHandler renders the submitted document as a .docx download. A
// draft ID may be given instead of a document, in which case the session's
// current state is exported.
func ExportWordHandler(svc *export.Service, sessions *builder.SessionManager) echo.HandlerFunc {
	return exportDocumentHandler(svc.ExportWord, sessions)
}

// ExportTextHandler renders the submitted document as a plain-text download.
func ExportTextHandler(svc *export.Service, sessions *builder.SessionManager) echo.HandlerFunc {
	return exportDocumentHandler(svc.ExportText, sessions)
}

func exportDocumentHandler(render func(models.ExportableResume, string) (*export.Artifact, error), sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ExportRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}

		doc := req.Document
		if doc == nil && req.DraftID != "" {
			ctrl, ok := sessions.Get(req.DraftID)
			if !ok {
				return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
			}
			doc = ctrl.Document()
		}
		if doc == nil {
			return errorJSON(c, http.StatusBadRequest, "missing_document", "Provide a document or draft_id")
		}

		started := time.Now()
		artifact, err := render(models.NormalizeResume(doc), req.FileName)
		if err != nil {
			return exportError(c, err)
		}
		return sendArtifact(c, artifact, started)
	}
}

func sendArtifact(c echo.Context, artifact *export.Artifact, started time.Time) error {
	logging.GetGlobalLogger().Info("Export complete", map[string]interface{}{
		"request_id": requestID(c),
		"file_name":  artifact.FileName,
		"size_bytes": len(artifact.Data),
		"duration":   utils.FormatDuration(time.Since(started)),
	})

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, artifact.FileName))
	return c.Blob(http.StatusOK, artifact.ContentType, artifact.Data)
}

func exportError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, export.ErrContentMissing):
		return errorFrom(c, "content_missing", utils.NewExportError("Nothing to export"))
	case errors.Is(err, context.DeadlineExceeded):
		return errorFrom(c, "export_timeout", utils.NewTimeoutError("Export timed out"))
	default:
		return errorFrom(c, "export_failed", utils.NewInternalServerError(err.Error()))
	}
}
