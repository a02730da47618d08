package conversation

import "strings"

// SessionAttributes is the slice of an HTTP session the conversation scope
// needs: an identifier and a string-keyed attribute map. Every accessor
// reports an error once the session has been invalidated.
type SessionAttributes interface {
	ID() string
	Attribute(name string) (interface{}, error)
	SetAttribute(name string, value interface{}) error
	RemoveAttribute(name string) error
	AttributeNames() ([]string, error)
}

// BeanStore holds the instances that belong to one conversation.
type BeanStore interface {
	Get(name string) (interface{}, error)
	Put(name string, instance interface{}) error
	Remove(name string) error
	Keys() ([]string, error)
}

// SessionBeanStore backs a conversation's instances with the HTTP session,
// namespacing attribute names by conversation id so concurrent long-running
// conversations in one session cannot collide.
type SessionBeanStore struct {
	session SessionAttributes
	prefix  string
}

func storePrefix(cid string) string {
	return "conversation." + cid + "."
}

// NewSessionBeanStore creates a store for the conversation identified by cid,
// scoped to the given session. It fails with SessionInvalidatedError when the
// session has already been invalidated, so callers never activate a scope
// against a dead session.
func NewSessionBeanStore(session SessionAttributes, cid string) (*SessionBeanStore, error) {
	if _, err := session.AttributeNames(); err != nil {
		return nil, err
	}
	return &SessionBeanStore{
		session: session,
		prefix:  storePrefix(cid),
	}, nil
}

func (s *SessionBeanStore) Get(name string) (interface{}, error) {
	return s.session.Attribute(s.prefix + name)
}

func (s *SessionBeanStore) Put(name string, instance interface{}) error {
	return s.session.SetAttribute(s.prefix+name, instance)
}

func (s *SessionBeanStore) Remove(name string) error {
	return s.session.RemoveAttribute(s.prefix + name)
}

// Keys lists the store's instance names, with the conversation namespace
// stripped.
func (s *SessionBeanStore) Keys() ([]string, error) {
	names, err := s.session.AttributeNames()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasPrefix(name, s.prefix) {
			keys = append(keys, strings.TrimPrefix(name, s.prefix))
		}
	}
	return keys, nil
}
