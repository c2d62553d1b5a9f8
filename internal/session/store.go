package session

import (
	"log/slog"
	"sync"

	"github.com/sofiko-bakery/consultant-bot/pkg/metrics"
)

// Store maps user identities to their sessions, creating one on first contact.
// Sessions are held in memory for the process lifetime and never evicted.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	log      *slog.Logger
}

// NewStore returns an empty session store.
func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}

	return &Store{
		sessions: make(map[int64]*Session),
		log:      log,
	}
}

// GetOrCreate returns the session for the user, creating it at the main menu
// with an empty cart on first contact. Concurrent first contact for the same
// user observes exactly one session instance. The second return reports
// whether the session was created by this call.
func (st *Store) GetOrCreate(userID int64) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[userID]
	st.mu.RUnlock()
	if ok {
		return s, false
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[userID]; ok {
		return s, false
	}

	s = NewSession(userID)
	st.sessions[userID] = s
	metrics.SetActiveSessions(len(st.sessions))
	st.log.Info("session created", slog.Int64("user_id", userID))

	return s, true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
