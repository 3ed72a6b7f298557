package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// DraftResponse is the state snapshot of an editing session returned by the
// draft endpoints.
type DraftResponse struct {
	DraftID    string            `json:"draft_id"`
	Document   *ResumeDocument   `json:"document"`
	Visibility SectionVisibility `json:"visibility"`
	Valid      bool              `json:"valid"`
	Dirty      bool              `json:"dirty"`
	Touched    []string          `json:"touched,omitempty"`
	Errors     interface{}       `json:"errors,omitempty"`
}

// ValidationResponse reports the outcome of an explicit validation pass.
type ValidationResponse struct {
	Valid  bool        `json:"valid"`
	Errors interface{} `json:"errors,omitempty"`
}

// GenerateResumeResponse carries the rendered markup returned by the remote
// generation service.
type GenerateResumeResponse struct {
	Success bool   `json:"success"`
	HTML    string `json:"html,omitempty"`
	Message string `json:"message,omitempty"`
}

// CertificateResponse carries generated or retrieved certificate markup.
type CertificateResponse struct {
	ID   string `json:"id,omitempty"`
	HTML string `json:"html,omitempty"`
}
