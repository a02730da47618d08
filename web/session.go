package web

import (
	"net/http"
	"sort"
	"sync"

	"github.com/centraunit/conversation"
	"github.com/google/uuid"
)

// Session is an in-process HTTP session. It implements
// conversation.SessionAttributes; every accessor fails once the session has
// been invalidated so conversation state is never written to a dead session.
type Session struct {
	id          string
	mu          sync.RWMutex
	attributes  map[string]interface{}
	invalidated bool
}

func newSession() *Session {
	return &Session{
		id:         uuid.NewString(),
		attributes: make(map[string]interface{}),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Attribute(name string) (interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.invalidated {
		return nil, &conversation.SessionInvalidatedError{SessionID: s.id}
	}
	return s.attributes[name], nil
}

func (s *Session) SetAttribute(name string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invalidated {
		return &conversation.SessionInvalidatedError{SessionID: s.id}
	}
	s.attributes[name] = value
	return nil
}

func (s *Session) RemoveAttribute(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invalidated {
		return &conversation.SessionInvalidatedError{SessionID: s.id}
	}
	delete(s.attributes, name)
	return nil
}

func (s *Session) AttributeNames() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.invalidated {
		return nil, &conversation.SessionInvalidatedError{SessionID: s.id}
	}
	names := make([]string, 0, len(s.attributes))
	for name := range s.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Invalidate drops the session's attributes and marks it dead.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated = true
	s.attributes = nil
}

// DefaultCookieName identifies the session cookie when no other name is
// configured.
const DefaultCookieName = "SESSIONID"

// SessionStore hands out sessions keyed by a request cookie, creating one on
// first sight of a client.
type SessionStore struct {
	mu       sync.RWMutex
	cookie   string
	sessions map[string]*Session
}

// StoreOption configures a SessionStore.
type StoreOption func(*SessionStore)

// WithCookieName sets the name of the session cookie.
func WithCookieName(name string) StoreOption {
	return func(st *SessionStore) {
		st.cookie = name
	}
}

// NewSessionStore creates an empty session store.
func NewSessionStore(opts ...StoreOption) *SessionStore {
	st := &SessionStore{
		cookie:   DefaultCookieName,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Session returns the request's session, creating it and setting the session
// cookie when the request carries none. An invalidated session is replaced
// with a fresh one.
func (st *SessionStore) Session(w http.ResponseWriter, r *http.Request) *Session {
	if cookie, err := r.Cookie(st.cookie); err == nil {
		st.mu.RLock()
		sess, ok := st.sessions[cookie.Value]
		st.mu.RUnlock()
		if ok && !sess.isInvalidated() {
			return sess
		}
	}

	sess := newSession()
	st.mu.Lock()
	st.sessions[sess.ID()] = sess
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     st.cookie,
		Value:    sess.ID(),
		Path:     "/",
		HttpOnly: true,
	})
	return sess
}

func (s *Session) isInvalidated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.invalidated
}
