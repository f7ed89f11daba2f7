package session

import (
	"sync"
	"time"

	"github.com/rbhz/dictionary-lookup/app/history"
)

// forgetter is implemented by storages able to drop a whole session history
type forgetter interface {
	Forget(session string)
}

// Manager keeps live sessions of a front end
type Manager struct {
	storage  history.Storage
	pipeline Pipeline
	sessions map[string]*Session
	mx       sync.Mutex
}

// Get returns session by ID creating it on first use
func (m *Manager) Get(id string) *Session {
	m.mx.Lock()
	defer m.mx.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = &Session{
			history:  history.New(m.storage, id),
			pipeline: m.pipeline,
			lastSeen: time.Now(),
		}
		m.sessions[id] = s
	}
	return s
}

// Len returns number of live sessions
func (m *Manager) Len() int {
	m.mx.Lock()
	defer m.mx.Unlock()
	return len(m.sessions)
}

// Prune drops sessions idle for longer than idle together with their history
func (m *Manager) Prune(idle time.Duration) int {
	now := time.Now()
	m.mx.Lock()
	defer m.mx.Unlock()
	var pruned int
	for id, s := range m.sessions {
		if s.idleSince(now) <= idle {
			continue
		}
		delete(m.sessions, id)
		if f, ok := m.storage.(forgetter); ok {
			f.Forget(id)
		}
		pruned++
	}
	return pruned
}

// NewManager creates Manager using storage for histories
func NewManager(storage history.Storage, pipeline Pipeline) *Manager {
	return &Manager{
		storage:  storage,
		pipeline: pipeline,
		sessions: make(map[string]*Session),
	}
}
