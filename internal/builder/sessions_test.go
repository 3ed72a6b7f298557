package builder

import (
	"testing"
	"time"

	"resumeforge/internal/config"
	"resumeforge/pkg/models"
)

func sessionConfig(maxSessions int) *config.Config {
	cfg := &config.Config{}
	cfg.Builder.DebounceInterval = 500 * time.Millisecond
	cfg.Builder.MaxSessions = maxSessions
	cfg.Builder.SessionMaxAge = 24 * time.Hour
	cfg.Builder.CleanupInterval = time.Hour
	return cfg
}

func TestSessionManagerLifecycle(t *testing.T) {
	m := NewSessionManager(sessionConfig(10))

	id, ctrl, err := m.Create(nil, models.DefaultSectionVisibility())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if id == "" || ctrl == nil {
		t.Fatal("Create returned empty session")
	}

	got, ok := m.Get(id)
	if !ok || got != ctrl {
		t.Error("Get should return the created controller")
	}
	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}

	if !m.Delete(id) {
		t.Error("Delete should succeed for a live session")
	}
	if m.Delete(id) {
		t.Error("double delete should report absence")
	}
	if m.Count() != 0 {
		t.Errorf("Count = %d after delete, want 0", m.Count())
	}
}

func TestSessionManagerRestart(t *testing.T) {
	m := NewSessionManager(sessionConfig(10))

	m.Start()
	m.Stop()
	m.Start()

	if _, _, err := m.Create(nil, models.DefaultSectionVisibility()); err != nil {
		t.Fatalf("Create after restart failed: %v", err)
	}

	// A second Stop must not panic on the first run's channel.
	m.Stop()
	m.Stop()
}

func TestSessionManagerLimit(t *testing.T) {
	m := NewSessionManager(sessionConfig(1))

	if _, _, err := m.Create(nil, models.DefaultSectionVisibility()); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, _, err := m.Create(nil, models.DefaultSectionVisibility()); err == nil {
		t.Error("Create over the session limit should fail")
	}
}

func TestSessionManagerSeedsDocument(t *testing.T) {
	m := NewSessionManager(sessionConfig(10))

	seed := models.NewResumeDocument()
	seed.BasicDetails.Name = "Ada Lovelace"

	_, ctrl, err := m.Create(seed, models.DefaultSectionVisibility())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := ctrl.Document().BasicDetails.Name; got != "Ada Lovelace" {
		t.Errorf("seeded name = %q", got)
	}

	// The controller works on a snapshot, not the caller's document.
	seed.BasicDetails.Name = "Mallory"
	if got := ctrl.Document().BasicDetails.Name; got != "Ada Lovelace" {
		t.Errorf("controller should hold a snapshot, got %q", got)
	}
}
