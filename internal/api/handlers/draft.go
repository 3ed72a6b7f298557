package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/builder"
	"resumeforge/internal/logging"
	"resumeforge/internal/schema"
	"resumeforge/pkg/models"
)

// draftResponse snapshots a controller into the wire shape.
func draftResponse(id string, ctrl *builder.Controller) models.DraftResponse {
	resp := models.DraftResponse{
		DraftID:    id,
		Document:   ctrl.Document(),
		Visibility: ctrl.Visibility(),
		Valid:      ctrl.Valid(),
		Dirty:      ctrl.Dirty(),
		Touched:    ctrl.TouchedPaths(),
	}
	if errs := ctrl.Errors(); !errs.Empty() {
		resp.Errors = errs
	}
	return resp
}

// CreateDraftHandler opens a new editing session, optionally seeded from an
// existing document.
func CreateDraftHandler(sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CreateDraftRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}

		id, ctrl, err := sessions.Create(req.Document, models.DefaultSectionVisibility())
		if err != nil {
			return errorJSON(c, http.StatusServiceUnavailable, "session_limit", err.Error())
		}
		return c.JSON(http.StatusCreated, draftResponse(id, ctrl))
	}
}

// GetDraftHandler returns the current state of an editing session.
func GetDraftHandler(sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctrl, ok := sessions.Get(id)
		if !ok {
			return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
		}
		return c.JSON(http.StatusOK, draftResponse(id, ctrl))
	}
}

// UpdateFieldHandler mutates one field of the draft document.
func UpdateFieldHandler(sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctrl, ok := sessions.Get(id)
		if !ok {
			return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
		}

		var req models.UpdateFieldRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if err := requestValidator.Struct(&req); err != nil {
			return validationError(c, err)
		}

		if err := ctrl.UpdateField(req.Section, req.Index, req.Field, req.Value); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_field", err.Error())
		}
		return c.JSON(http.StatusOK, draftResponse(id, ctrl))
	}
}

// PatchArrayHandler appends to or removes from a section array.
func PatchArrayHandler(sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctrl, ok := sessions.Get(id)
		if !ok {
			return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
		}

		var req models.PatchArrayRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if err := requestValidator.Struct(&req); err != nil {
			return validationError(c, err)
		}

		item, err := decodeArrayItem(req.Section, req.Item)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_item", err.Error())
		}

		if err := ctrl.PatchArray(req.Section, builder.ArrayOp(req.Op), req.Index, item); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_patch", err.Error())
		}
		return c.JSON(http.StatusOK, draftResponse(id, ctrl))
	}
}

// VisibilityHandler toggles, shows or hides an optional section.
func VisibilityHandler(sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctrl, ok := sessions.Get(id)
		if !ok {
			return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
		}

		var req models.VisibilityRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if err := requestValidator.Struct(&req); err != nil {
			return validationError(c, err)
		}

		if err := ctrl.ApplyVisibility(req.Section, req.Op); err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_visibility", err.Error())
		}
		return c.JSON(http.StatusOK, draftResponse(id, ctrl))
	}
}

// ValidateDraftHandler runs whole-form validation immediately.
func ValidateDraftHandler(sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctrl, ok := sessions.Get(id)
		if !ok {
			return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
		}

		valid := ctrl.ValidateForm()
		resp := models.ValidationResponse{Valid: valid}
		if errs := ctrl.Errors(); !errs.Empty() {
			resp.Errors = errs
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// ValidateSectionHandler validates one section and returns its flat
// field-to-message mapping.
func ValidateSectionHandler(sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctrl, ok := sessions.Get(id)
		if !ok {
			return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
		}

		section := c.Param("section")
		flat, err := ctrl.ValidateSection(section)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, "invalid_section", err.Error())
		}

		resp := models.ValidationResponse{Valid: len(flat) == 0}
		if len(flat) > 0 {
			resp.Errors = flat
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// ResetDraftHandler restores the session's initial document.
func ResetDraftHandler(sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		ctrl, ok := sessions.Get(id)
		if !ok {
			return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
		}
		ctrl.Reset()
		return c.JSON(http.StatusOK, draftResponse(id, ctrl))
	}
}

// DeleteDraftHandler closes an editing session.
func DeleteDraftHandler(sessions *builder.SessionManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if !sessions.Delete(id) {
			return errorJSON(c, http.StatusNotFound, "draft_not_found", "No such draft session")
		}

		logging.GetGlobalLogger().Info("Draft session deleted", map[string]interface{}{
			"draft_id":   id,
			"request_id": requestID(c),
		})
		return c.NoContent(http.StatusNoContent)
	}
}

// decodeArrayItem converts the loosely typed JSON item into the record type
// the section stores. A nil item appends a blank row.
func decodeArrayItem(section string, item interface{}) (interface{}, error) {
	if item == nil {
		return nil, nil
	}

	switch section {
	case schema.SectionTechSkills, schema.SectionSoftSkills:
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("section %s holds strings", section)
		}
		return s, nil
	}

	raw, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("invalid item: %w", err)
	}

	switch section {
	case schema.SectionEducation:
		var v models.Education
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("invalid education entry: %w", err)
		}
		return v, nil
	case schema.SectionExperience:
		var v models.Experience
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("invalid experience entry: %w", err)
		}
		return v, nil
	case schema.SectionProjects:
		var v models.Project
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("invalid project entry: %w", err)
		}
		return v, nil
	case schema.SectionCertifications:
		var v models.Certification
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("invalid certification entry: %w", err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("section %s is not an array", section)
}
