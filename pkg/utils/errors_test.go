package utils

import (
	"net/http"
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *CustomError
		wantCode int
		wantMsg  string
	}{
		{"bad request", NewBadRequestError("nope"), http.StatusBadRequest, "nope"},
		{"not found", NewNotFoundError("gone"), http.StatusNotFound, "gone"},
		{"internal", NewInternalServerError("boom"), http.StatusInternalServerError, "boom"},
		{"timeout", NewTimeoutError("slow"), http.StatusRequestTimeout, "slow"},
		{"validation", NewValidationError("name required"), http.StatusBadRequest, "Validation failed"},
		{"export", NewExportError("no content"), http.StatusUnprocessableEntity, "Export failed"},
		{"auth", NewAuthError("bad token"), http.StatusUnauthorized, "Authentication required"},
		{"remote", NewRemoteError("backend down"), http.StatusBadGateway, "Remote service failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMsg)
			}
		})
	}
}

func TestCustomErrorString(t *testing.T) {
	plain := NewNotFoundError("gone")
	if got := plain.Error(); got != "gone" {
		t.Errorf("Error() = %q, want %q", got, "gone")
	}

	detailed := NewExportError("no content")
	if got := detailed.Error(); got != "Export failed: no content" {
		t.Errorf("Error() = %q, want detail appended", got)
	}
}
