package sessions

import (
	"fmt"
	"sync"
	"time"

	"github.com/egarim/editorhost/pkg/document"
	"github.com/egarim/editorhost/pkg/host"
)

// SessionInfo holds information about one open editing session
type SessionInfo struct {
	ID         string
	Name       string
	Document   *document.Document
	Binding    host.Binding
	CreatedAt  time.Time
	LastActive time.Time
	Kind       string
}

// Manager tracks open editing sessions. Each session owns one document and
// the binding rendering it; closing a session disposes the binding before the
// document is discarded so no late widget events reach a dead document.
type Manager struct {
	mu             sync.RWMutex
	sessions       map[string]*SessionInfo
	nextID         int
	onSessionClose func(sessionID string) // Callback for when a session is closed
}

// NewManager creates a new session manager instance
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*SessionInfo),
		nextID:   1,
	}
}

// SetOnSessionClose sets a callback function that will be called when a session is closed
func (m *Manager) SetOnSessionClose(callback func(sessionID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSessionClose = callback
}

// Open registers a new session around an already bound document
func (m *Manager) Open(name, kind string, doc *document.Document, binding host.Binding) (*SessionInfo, error) {
	if doc == nil {
		return nil, fmt.Errorf("no document provided for session %q", name)
	}
	if binding == nil {
		return nil, fmt.Errorf("no binding provided for session %q", name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sessionID := fmt.Sprintf("session-%d", m.nextID)
	m.nextID++

	info := &SessionInfo{
		ID:         sessionID,
		Name:       name,
		Document:   doc,
		Binding:    binding,
		CreatedAt:  time.Now(),
		LastActive: time.Now(),
		Kind:       kind,
	}

	m.sessions[sessionID] = info

	return info, nil
}

// Close closes a session by ID
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.closeSession(sessionID)
}

// closeSession internal method to close a session (must be called with lock held)
func (m *Manager) closeSession(sessionID string) error {
	info, exists := m.sessions[sessionID]
	if !exists {
		return fmt.Errorf("session with ID %s not found", sessionID)
	}

	// Dispose the binding first so it detaches from the document
	info.Binding.Dispose()

	delete(m.sessions, sessionID)

	if m.onSessionClose != nil {
		go m.onSessionClose(sessionID)
	}

	return nil
}

// Get returns session info by ID. It takes the write lock because it touches
// LastActive.
func (m *Manager) Get(sessionID string) (*SessionInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, exists := m.sessions[sessionID]
	if exists {
		info.LastActive = time.Now()
	}
	return info, exists
}

// List returns a list of all open sessions
func (m *Manager) List() []*SessionInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*SessionInfo, 0, len(m.sessions))
	for _, info := range m.sessions {
		sessions = append(sessions, info)
	}

	return sessions
}

// Count returns the total number of open sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.sessions)
}

// CountByKind returns the number of sessions of a specific kind
func (m *Manager) CountByKind(kind string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, info := range m.sessions {
		if info.Kind == kind {
			count++
		}
	}

	return count
}

// Rename updates the display name of a session
func (m *Manager) Rename(sessionID string, newName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	info, exists := m.sessions[sessionID]
	if !exists {
		return fmt.Errorf("session with ID %s not found", sessionID)
	}

	info.Name = newName

	return nil
}

// SetEditable toggles edit access on every open session's binding
func (m *Manager) SetEditable(isEditable bool) {
	m.mu.RLock()
	bindings := make([]host.Binding, 0, len(m.sessions))
	for _, info := range m.sessions {
		bindings = append(bindings, info.Binding)
	}
	m.mu.RUnlock()

	for _, binding := range bindings {
		binding.ApplyReadOnlyState(isEditable)
	}
}

// CloseAll closes every open session
func (m *Manager) CloseAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errors []string
	var sessionsToClose []string

	for sessionID := range m.sessions {
		sessionsToClose = append(sessionsToClose, sessionID)
	}

	for _, sessionID := range sessionsToClose {
		if err := m.closeSession(sessionID); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("errors closing sessions: %v", errors)
	}

	return nil
}
