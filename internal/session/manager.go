package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// DefaultTTL is the session lifetime applied when none is configured.
const DefaultTTL = 24 * time.Hour

type session struct {
	createdAt time.Time
	expiresAt time.Time
}

// Manager issues and validates the bearer tokens gating admin operations.
// Sessions live in process memory only; expiry is evaluated lazily on each
// call rather than by a background timer. All methods are safe for
// concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]session
	ttl      time.Duration
	now      func() time.Time
	logger   *logrus.Logger
}

// Options configures the session manager. TTL defaults to DefaultTTL; Clock
// defaults to time.Now and exists for tests.
type Options struct {
	TTL    time.Duration
	Clock  func() time.Time
	Logger *logrus.Logger
}

// NewManager constructs a session manager.
func NewManager(opts Options) (*Manager, error) {
	if opts.TTL < 0 {
		return nil, eris.New("session TTL must not be negative")
	}

	ttl := opts.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &Manager{
		sessions: make(map[string]session),
		ttl:      ttl,
		now:      clock,
		logger:   opts.Logger,
	}, nil
}

// Create issues a fresh random token with a fixed expiry of now + TTL,
// purging any sessions that have already expired along the way.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.purgeExpiredLocked(now)

	token := uuid.NewString()
	m.sessions[token] = session{
		createdAt: now,
		expiresAt: now.Add(m.ttl),
	}

	if m.logger != nil {
		m.logger.WithField("active_sessions", len(m.sessions)).Info("admin session created")
	}

	return token
}

// Validate reports whether the token names a live session. A session
// discovered expired is deleted and can never revive.
func (m *Manager) Validate(token string) bool {
	if token == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.sessions[token]
	if !ok {
		return false
	}

	if !m.now().Before(entry.expiresAt) {
		delete(m.sessions, token)
		return false
	}

	return true
}

// Delete invalidates the token. Deleting an unknown token is a no-op.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; ok {
		delete(m.sessions, token)
		if m.logger != nil {
			m.logger.WithField("active_sessions", len(m.sessions)).Info("admin session deleted")
		}
	}
}

// ActiveCount returns the number of stored sessions, expired ones included
// until a Create or Validate call purges them.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.sessions)
}

func (m *Manager) purgeExpiredLocked(now time.Time) {
	for token, entry := range m.sessions {
		if !now.Before(entry.expiresAt) {
			delete(m.sessions, token)
		}
	}
}
