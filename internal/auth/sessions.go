package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/school-portal/internal/domain"
)

// SessionRegistry holds live sessions in process memory. Nothing survives a restart.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionRegistry creates a registry whose sessions expire after ttl (0 disables expiry).
func NewSessionRegistry(ttl time.Duration, logger *zap.Logger) *SessionRegistry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionRegistry{
		sessions: make(map[string]*domain.Session),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Create stores session under a fresh id and returns the stored copy.
func (r *SessionRegistry) Create(session domain.Session) domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()
	session.ID = uuid.NewString()
	session.CreatedAt = r.now().UTC()
	stored := session
	r.sessions[session.ID] = &stored

	r.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.String("role", string(session.Role)))
	return session
}

// Get returns the live session with id.
func (r *SessionRegistry) Get(id string) (domain.Session, bool) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return domain.Session{}, false
	}
	if r.expired(session) {
		r.End(id)
		return domain.Session{}, false
	}
	return *session, true
}

// End destroys the session; it reports whether one existed.
func (r *SessionRegistry) End(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[id]
	if !ok {
		return false
	}
	delete(r.sessions, id)
	r.logger.Info("session ended",
		zap.String("session_id", id),
		zap.String("role", string(session.Role)))
	return true
}

// Len returns the number of stored sessions.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *SessionRegistry) expired(session *domain.Session) bool {
	return r.ttl > 0 && r.now().Sub(session.CreatedAt) > r.ttl
}

func (r *SessionRegistry) pruneLocked() {
	for id, session := range r.sessions {
		if r.expired(session) {
			delete(r.sessions, id)
		}
	}
}
