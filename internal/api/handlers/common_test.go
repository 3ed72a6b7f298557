package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

func recordedError(t *testing.T, write func(echo.Context) error) (int, models.ErrorResponse) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := write(c); err != nil {
		t.Fatalf("writing error response failed: %v", err)
	}

	var body models.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error envelope: %v", err)
	}
	return rec.Code, body
}

func TestErrorFromUsesCustomErrorStatus(t *testing.T) {
	status, body := recordedError(t, func(c echo.Context) error {
		return errorFrom(c, "content_missing", utils.NewExportError("Nothing to export"))
	})

	if status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", status)
	}
	if body.Error != "content_missing" {
		t.Errorf("error code = %q, want content_missing", body.Error)
	}
	if body.Message != "Export failed: Nothing to export" {
		t.Errorf("message = %q", body.Message)
	}
	if body.RequestID == "" {
		t.Error("request_id should be set")
	}
}

func TestBindAndValidationErrors(t *testing.T) {
	status, body := recordedError(t, bindError)
	if status != http.StatusBadRequest || body.Error != "invalid_request" {
		t.Errorf("bindError = %d %q, want 400 invalid_request", status, body.Error)
	}

	status, body = recordedError(t, func(c echo.Context) error {
		return validationError(c, utils.NewBadRequestError("email is required"))
	})
	if status != http.StatusBadRequest || body.Error != "validation_error" {
		t.Errorf("validationError = %d %q, want 400 validation_error", status, body.Error)
	}
	if body.Message != "Validation failed: email is required" {
		t.Errorf("message = %q", body.Message)
	}
}
