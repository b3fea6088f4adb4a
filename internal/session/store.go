package session

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"finapp/internal/cache"
)

// CookieName is the cookie carrying the session ID.
const CookieName = "finapp_session"

// Store maps session IDs to their State. Sessions idle for longer than the TTL
// are torn down; the least recently used session is evicted when full.
type Store struct {
	sessions *cache.LRUCache[*State]
	ttl      time.Duration
	secure   bool
}

// Config holds session store settings.
type Config struct {
	TTL         time.Duration
	MaxSessions int
	// SecureCookie marks the cookie Secure; enable behind TLS.
	SecureCookie bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		TTL:         2 * time.Hour,
		MaxSessions: 1000,
	}
}

// NewStore creates a store and registers it for periodic cleanup.
func NewStore(cfg Config, mgr *cache.Manager) *Store {
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = def.MaxSessions
	}
	s := &Store{
		sessions: cache.NewLRUCache[*State](cfg.MaxSessions, cfg.TTL),
		ttl:      cfg.TTL,
		secure:   cfg.SecureCookie,
	}
	if mgr != nil {
		mgr.Register("sessions", s.sessions)
	}
	return s
}

// Create starts a new session and returns its ID.
func (s *Store) Create() (string, *State) {
	id := uuid.NewString()
	st := NewState()
	s.sessions.Set(id, st)
	return id, st
}

// Get returns the live session for id and extends its lifetime.
func (s *Store) Get(id string) (*State, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	st, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	s.sessions.Touch(id)
	return st, true
}

// Size returns the number of live sessions.
func (s *Store) Size() int {
	return s.sessions.Size()
}

// Load returns the request's session, creating one (and setting the cookie)
// when the request carries no live session.
func (s *Store) Load(w http.ResponseWriter, r *http.Request) *State {
	if c, err := r.Cookie(CookieName); err == nil {
		if st, ok := s.Get(c.Value); ok {
			st.Init()
			return st
		}
	}

	id, st := s.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	slog.DebugContext(r.Context(), "Session created", "component", "session", "sessions", s.Size())
	return st
}
