package export

import (
	"testing"

	"resumeforge/internal/config"
)

func TestNewCaptureServiceSlotCapacity(t *testing.T) {
	cfg := &config.Config{}
	cfg.Browser.MaxInstances = 3
	if got := cap(NewCaptureService(cfg).slots); got != 3 {
		t.Errorf("slot capacity = %d, want 3", got)
	}

	cfg.Browser.MaxInstances = 0
	if got := cap(NewCaptureService(cfg).slots); got != 1 {
		t.Errorf("slot capacity = %d for zero config, want 1", got)
	}
}

func TestPreviewURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.Export.Preview.BaseURL = "http://localhost:3000/preview/"
	cfg.Export.Preview.Token = "s3cret"

	cs := NewCaptureService(cfg)
	got := cs.previewURL("draft-1")
	want := "http://localhost:3000/preview/draft-1?token=s3cret"
	if got != want {
		t.Errorf("previewURL = %q, want %q", got, want)
	}
}
