package builder

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/internal/logging/types"
	"resumeforge/pkg/models"
)

// SessionManager owns the live editing sessions: one Controller per draft,
// keyed by an opaque draft ID. Stale sessions are reaped in the background so
// abandoned drafts do not pile up.
type SessionManager struct {
	cfg    *config.Config
	logger types.Logger

	mu       sync.RWMutex
	sessions map[string]*session
	stopCh   chan struct{}
	running  bool
}

type session struct {
	controller *Controller
	createdAt  time.Time
	lastUsed   time.Time
}

// NewSessionManager creates a session manager from configuration.
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		cfg:      cfg,
		logger:   logging.GetGlobalLogger(),
		sessions: make(map[string]*session),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the stale-session reaper. A stopped manager may be started
// again; each run gets its own stop channel.
func (m *SessionManager) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.stopCh = make(chan struct{})
	stopCh := m.stopCh
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(m.cfg.Builder.CleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.reap()
			case <-stopCh:
				return
			}
		}
	}()
}

// Stop halts the reaper. Live sessions stay usable until deleted.
func (m *SessionManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		close(m.stopCh)
		m.running = false
	}
}

// Create opens a new editing session over the given document (nil seeds the
// empty template) and returns its draft ID.
func (m *SessionManager) Create(doc *models.ResumeDocument, vis models.SectionVisibility) (string, *Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.cfg.Builder.MaxSessions {
		return "", nil, fmt.Errorf("session limit reached (%d)", m.cfg.Builder.MaxSessions)
	}

	ctrl := NewController(doc,
		WithVisibility(vis),
		WithDebounce(m.cfg.Builder.DebounceInterval),
	)

	id := uuid.New().String()
	now := time.Now()
	m.sessions[id] = &session{controller: ctrl, createdAt: now, lastUsed: now}

	m.logger.Info("Draft session created", map[string]interface{}{
		"draft_id": id,
		"sessions": len(m.sessions),
	})
	return id, ctrl, nil
}

// Get returns the controller for a draft ID and refreshes its last-used time.
func (m *SessionManager) Get(id string) (*Controller, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastUsed = time.Now()
	return s.controller, true
}

// Delete closes an editing session.
func (m *SessionManager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return false
	}
	delete(m.sessions, id)
	return true
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// reap drops sessions idle past the configured max age.
func (m *SessionManager) reap() {
	cutoff := time.Now().Add(-m.cfg.Builder.SessionMaxAge)

	m.mu.Lock()
	var reaped []string
	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			reaped = append(reaped, id)
		}
	}
	remaining := len(m.sessions)
	m.mu.Unlock()

	if len(reaped) > 0 {
		m.logger.Info("Reaped stale draft sessions", map[string]interface{}{
			"reaped":    len(reaped),
			"remaining": remaining,
		})
	}
}
