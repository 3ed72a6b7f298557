package export

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/internal/logging/types"
	"resumeforge/pkg/models"
)

// Sentinel errors to allow precise mapping in handlers
var (
	// ErrContentMissing means there was nothing to export: the preview
	// element was absent, or the normalized resume is empty.
	ErrContentMissing = errors.New("content_missing")
	// ErrRender means the underlying renderer failed.
	ErrRender = errors.New("render_error")
)

// Artifact is a finished export: the bytes plus download metadata. Exporters
// build the whole artifact in memory before returning, so a failed export
// never leaves a partial file behind.
type Artifact struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Service runs the three exporters. They share the ExportableResume input
// contract, never mutate their input and never validate it; sequencing
// (no duplicate in-flight export of one format) is the caller's job.
type Service struct {
	cfg     *config.Config
	logger  types.Logger
	capture *CaptureService
}

// NewService creates the export service. The browser behind the PDF path is
// launched lazily on first use.
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:     cfg,
		logger:  logging.GetGlobalLogger(),
		capture: NewCaptureService(cfg),
	}
}

// Close releases the capture browser.
func (s *Service) Close() error {
	return s.capture.Close()
}

// ExportPDF captures the draft's preview page and tiles the capture onto
// fixed-size pages.
func (s *Service) ExportPDF(ctx context.Context, draftID, baseName string) (*Artifact, error) {
	shot, err := s.capture.CapturePreview(ctx, draftID)
	if err != nil {
		s.logger.Error("Preview capture failed", map[string]interface{}{
			"draft_id": draftID,
			"error":    err.Error(),
		})
		return nil, err
	}

	data, err := renderPDF(shot, s.cfg.Export.PageWidthMM, s.cfg.Export.PageHeightMM)
	if err != nil {
		s.logger.Error("PDF assembly failed", map[string]interface{}{
			"draft_id": draftID,
			"error":    err.Error(),
		})
		return nil, err
	}

	return &Artifact{
		FileName:    artifactName(baseName, ".pdf"),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// ExportWord assembles a .docx document from the normalized resume.
func (s *Service) ExportWord(resume models.ExportableResume, baseName string) (*Artifact, error) {
	if resumeEmpty(resume) {
		return nil, fmt.Errorf("%w: resume has no content", ErrContentMissing)
	}

	data, err := renderDocx(resume)
	if err != nil {
		s.logger.Error("Word assembly failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Artifact{
		FileName:    artifactName(baseName, ".docx"),
		ContentType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Data:        data,
	}, nil
}

// ExportText renders the ATS-friendly plain-text form of the resume.
func (s *Service) ExportText(resume models.ExportableResume, baseName string) (*Artifact, error) {
	if resumeEmpty(resume) {
		return nil, fmt.Errorf("%w: resume has no content", ErrContentMissing)
	}

	data, err := renderText(resume)
	if err != nil {
		s.logger.Error("Text rendering failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	return &Artifact{
		FileName:    artifactName(baseName, ".txt"),
		ContentType: "text/plain; charset=utf-8",
		Data:        data,
	}, nil
}

// resumeEmpty reports whether the normalized resume carries nothing worth
// exporting.
func resumeEmpty(r models.ExportableResume) bool {
	return strings.TrimSpace(r.PersonalInfo.Name) == "" &&
		r.Summary == "" &&
		len(r.Experience) == 0 &&
		len(r.Education) == 0 &&
		len(r.Skills) == 0 &&
		len(r.Projects) == 0 &&
		len(r.Certifications) == 0
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// artifactName builds the download filename from the caller-supplied base.
func artifactName(base, ext string) string {
	base = strings.TrimSuffix(strings.TrimSpace(base), ext)
	base = unsafeNameChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "resume"
	}
	return base + ext
}
