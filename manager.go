package conversation

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// activeConversationsAttr is the session attribute holding the set of
// long-running conversation ids that can be restored.
const activeConversationsAttr = "conversation.active"

// SessionManager is a Manager keeping long-running conversations in the HTTP
// session. It owns one current conversation at a time; restoration switches
// the same instance rather than replacing it, so references resolved earlier
// in the request stay current.
//
// Requests sharing a session are assumed to be serialized by the session
// infrastructure, so the manager performs no locking of its own.
type SessionManager struct {
	session SessionAttributes
	current *Conversation
	log     zerolog.Logger
}

// ManagerOption configures a SessionManager.
type ManagerOption func(*SessionManager)

// WithManagerLogger sets the logger conversation transitions are traced to.
func WithManagerLogger(log zerolog.Logger) ManagerOption {
	return func(m *SessionManager) {
		m.log = log
	}
}

// NewSessionManager creates a manager bound to the given session, starting
// with a fresh transient conversation.
func NewSessionManager(session SessionAttributes, opts ...ManagerOption) *SessionManager {
	m := &SessionManager{
		session: session,
		current: NewConversation(uuid.NewString()),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Conversation returns the current conversation.
func (m *SessionManager) Conversation() *Conversation {
	return m.current
}

// BeginOrRestore switches the current conversation to the stored
// long-running conversation identified by id. An empty id begins a fresh
// transient conversation; an unknown id leaves the current transient
// conversation in place, which is normal after a stored conversation has
// ended.
func (m *SessionManager) BeginOrRestore(id string) error {
	if id == "" {
		m.current.id = uuid.NewString()
		m.current.transient = true
		m.log.Debug().Str("cid", m.current.id).Msg("began transient conversation")
		return nil
	}

	known, err := m.knownConversations()
	if err != nil {
		return err
	}
	if _, ok := known[id]; !ok {
		m.log.Debug().Str("cid", id).Msg("no stored conversation for id, staying transient")
		return nil
	}

	m.current.SwitchTo(id)
	m.log.Debug().Str("cid", id).Msg("restored conversation")
	return nil
}

// Cleanup persists the current conversation when it is long-running and
// reclaims its session state when it is transient, then prepares a fresh
// transient conversation for the next request.
func (m *SessionManager) Cleanup() error {
	cur := m.current

	if cur.IsTransient() {
		if err := m.reclaim(cur.ID()); err != nil {
			return &CleanupError{ConversationID: cur.ID(), Err: err}
		}
		m.log.Debug().Str("cid", cur.ID()).Msg("reclaimed transient conversation")
	} else {
		if err := m.persist(cur.ID()); err != nil {
			return &CleanupError{ConversationID: cur.ID(), Err: err}
		}
		m.log.Debug().Str("cid", cur.ID()).Msg("persisted long-running conversation")
	}

	m.current = NewConversation(uuid.NewString())
	return nil
}

func (m *SessionManager) knownConversations() (map[string]struct{}, error) {
	raw, err := m.session.Attribute(activeConversationsAttr)
	if err != nil {
		return nil, err
	}
	known, _ := raw.(map[string]struct{})
	return known, nil
}

func (m *SessionManager) persist(id string) error {
	known, err := m.knownConversations()
	if err != nil {
		return err
	}
	next := make(map[string]struct{}, len(known)+1)
	for k := range known {
		next[k] = struct{}{}
	}
	next[id] = struct{}{}
	return m.session.SetAttribute(activeConversationsAttr, next)
}

func (m *SessionManager) reclaim(id string) error {
	names, err := m.session.AttributeNames()
	if err != nil {
		return err
	}
	prefix := storePrefix(id)
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			if err := m.session.RemoveAttribute(name); err != nil {
				return err
			}
		}
	}
	return nil
}
