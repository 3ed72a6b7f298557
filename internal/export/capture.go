package export

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/internal/logging/types"
)

// Selectors that mark the rendered resume on the preview page, in order of
// preference. The first one found is captured.
var previewSelectors = []string{
	".resume-container",
	"[data-testid='resume']",
	".resume",
	"main",
}

// CaptureService drives a headless browser to capture a draft's preview page.
// A single browser instance is launched lazily and reused across captures;
// concurrent captures are capped at Browser.MaxInstances pages.
type CaptureService struct {
	cfg    *config.Config
	logger types.Logger
	slots  chan struct{}

	mu      sync.Mutex
	browser *rod.Browser
}

// NewCaptureService creates a capture service. No browser is launched yet.
func NewCaptureService(cfg *config.Config) *CaptureService {
	maxInstances := cfg.Browser.MaxInstances
	if maxInstances < 1 {
		maxInstances = 1
	}
	return &CaptureService{
		cfg:    cfg,
		logger: logging.GetGlobalLogger(),
		slots:  make(chan struct{}, maxInstances),
	}
}

// CapturePreview renders the draft's preview page and returns a PNG of the
// resume element. Returns ErrContentMissing when the page has no resume
// element to capture.
func (cs *CaptureService) CapturePreview(ctx context.Context, draftID string) ([]byte, error) {
	captureCtx, cancel := context.WithTimeout(ctx, cs.cfg.Export.Timeout)
	defer cancel()

	select {
	case cs.slots <- struct{}{}:
		defer func() { <-cs.slots }()
	case <-captureCtx.Done():
		return nil, fmt.Errorf("%w: waiting for capture slot: %v", ErrRender, captureCtx.Err())
	}

	browser, err := cs.acquireBrowser()
	if err != nil {
		return nil, fmt.Errorf("%w: browser unavailable: %v", ErrRender, err)
	}

	previewURL := cs.previewURL(draftID)
	cs.logger.Info("Capturing draft preview", map[string]interface{}{
		"draft_id": draftID,
	})

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: creating page: %v", ErrRender, err)
	}
	defer page.Close()

	page = page.Context(captureCtx)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             794,  // A4 width at 96 DPI (210mm)
		Height:            1123, // A4 height at 96 DPI (297mm)
		DeviceScaleFactor: cs.cfg.Export.CaptureScale,
		Mobile:            false,
	}); err != nil {
		cs.logger.Warn("Failed to set viewport, using default", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if err := page.Navigate(previewURL); err != nil {
		return nil, fmt.Errorf("%w: navigating to preview: %v", ErrRender, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: waiting for preview load: %v", ErrRender, err)
	}

	element, err := cs.findResumeElement(captureCtx, page)
	if err != nil {
		return nil, fmt.Errorf("%w: preview has no resume element", ErrContentMissing)
	}

	// Let fonts and late styles settle before capturing
	idleCtx, idleCancel := context.WithTimeout(captureCtx, 3*time.Second)
	_ = page.Context(idleCtx).WaitIdle(1 * time.Second)
	idleCancel()

	shot, err := element.Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: capturing screenshot: %v", ErrRender, err)
	}

	cs.logger.Info("Preview captured", map[string]interface{}{
		"draft_id":   draftID,
		"size_bytes": len(shot),
	})
	return shot, nil
}

// Close shuts the shared browser down.
func (cs *CaptureService) Close() error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.browser == nil {
		return nil
	}
	err := cs.browser.Close()
	cs.browser = nil
	return err
}

// acquireBrowser returns the shared browser, launching it on first use.
func (cs *CaptureService) acquireBrowser() (*rod.Browser, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.browser != nil {
		return cs.browser, nil
	}

	l := launcher.New().
		Headless(cs.cfg.Browser.HeadlessMode).
		NoSandbox(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	if chromePath := systemChromePath(); chromePath != "" {
		l = l.Bin(chromePath)
	}
	if cs.cfg.Browser.UserAgent != "" {
		l = l.Set("user-agent", cs.cfg.Browser.UserAgent)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	cs.logger.Info("Capture browser launched", map[string]interface{}{})
	cs.browser = browser
	return browser, nil
}

// findResumeElement locates the rendered resume on the preview page.
func (cs *CaptureService) findResumeElement(ctx context.Context, page *rod.Page) (*rod.Element, error) {
	for _, selector := range previewSelectors {
		selectorCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		element, err := page.Context(selectorCtx).Element(selector)
		cancel()
		if err == nil {
			return element, nil
		}
	}
	return nil, fmt.Errorf("no resume element found")
}

// previewURL builds the authenticated preview URL for a draft.
func (cs *CaptureService) previewURL(draftID string) string {
	base := strings.TrimRight(cs.cfg.Export.Preview.BaseURL, "/")
	u := fmt.Sprintf("%s/%s", base, url.PathEscape(draftID))
	if token := cs.cfg.Export.Preview.Token; token != "" {
		u += "?token=" + url.QueryEscape(token)
	}
	return u
}

// systemChromePath finds an installed Chrome/Chromium binary, if any.
func systemChromePath() string {
	candidates := []string{
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
