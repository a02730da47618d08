package mock

import (
	"sort"

	"github.com/centraunit/conversation"
)

// RecordingManager is a conversation.Manager that records every call so
// tests can assert on restoration and cleanup behavior. It switches the
// shared conversation instance on restore, the way the session manager does.
type RecordingManager struct {
	Conv         *conversation.Conversation
	BeginCalls   []string
	CleanupCalls int
	BeginErr     error
	CleanupErr   error
}

func (m *RecordingManager) BeginOrRestore(id string) error {
	m.BeginCalls = append(m.BeginCalls, id)
	if m.BeginErr != nil {
		return m.BeginErr
	}
	if m.Conv != nil {
		m.Conv.SwitchTo(id)
	}
	return nil
}

func (m *RecordingManager) Cleanup() error {
	m.CleanupCalls++
	return m.CleanupErr
}

// FakeSession is an in-memory conversation.SessionAttributes with an
// inspectable attribute map and an invalidation switch.
type FakeSession struct {
	SessionID   string
	Attrs       map[string]interface{}
	Invalidated bool
}

func NewFakeSession(id string) *FakeSession {
	return &FakeSession{
		SessionID: id,
		Attrs:     make(map[string]interface{}),
	}
}

func (s *FakeSession) ID() string {
	return s.SessionID
}

func (s *FakeSession) Attribute(name string) (interface{}, error) {
	if s.Invalidated {
		return nil, &conversation.SessionInvalidatedError{SessionID: s.SessionID}
	}
	return s.Attrs[name], nil
}

func (s *FakeSession) SetAttribute(name string, value interface{}) error {
	if s.Invalidated {
		return &conversation.SessionInvalidatedError{SessionID: s.SessionID}
	}
	s.Attrs[name] = value
	return nil
}

func (s *FakeSession) RemoveAttribute(name string) error {
	if s.Invalidated {
		return &conversation.SessionInvalidatedError{SessionID: s.SessionID}
	}
	delete(s.Attrs, name)
	return nil
}

func (s *FakeSession) AttributeNames() ([]string, error) {
	if s.Invalidated {
		return nil, &conversation.SessionInvalidatedError{SessionID: s.SessionID}
	}
	names := make([]string, 0, len(s.Attrs))
	for name := range s.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
