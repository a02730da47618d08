package conversation_test

import (
	"errors"
	"testing"

	"github.com/centraunit/conversation"
	"github.com/centraunit/conversation/mock"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	session *mock.FakeSession
}

func (s *StoreTestSuite) SetupTest() {
	s.session = mock.NewFakeSession("sess-1")
}

func (s *StoreTestSuite) TestRoundTrip() {
	store, err := conversation.NewSessionBeanStore(s.session, "abc")
	s.NoError(err)

	s.NoError(store.Put("cart", "three items"))
	value, err := store.Get("cart")
	s.NoError(err)
	s.Equal("three items", value)

	s.NoError(store.Remove("cart"))
	value, err = store.Get("cart")
	s.NoError(err)
	s.Nil(value)
}

func (s *StoreTestSuite) TestNamespacedByConversation() {
	first, err := conversation.NewSessionBeanStore(s.session, "abc")
	s.NoError(err)
	second, err := conversation.NewSessionBeanStore(s.session, "xyz")
	s.NoError(err)

	s.NoError(first.Put("cart", "from-abc"))
	s.NoError(second.Put("cart", "from-xyz"))

	value, err := first.Get("cart")
	s.NoError(err)
	s.Equal("from-abc", value)

	keys, err := first.Keys()
	s.NoError(err)
	s.Equal([]string{"cart"}, keys)

	// The raw session holds both, under distinct names.
	s.Len(s.session.Attrs, 2)
}

func (s *StoreTestSuite) TestInvalidatedSessionRejectsConstruction() {
	s.session.Invalidated = true

	_, err := conversation.NewSessionBeanStore(s.session, "abc")
	s.Error(err)
	var invalidated *conversation.SessionInvalidatedError
	s.True(errors.As(err, &invalidated))
	s.Equal("sess-1", invalidated.SessionID)
}

func (s *StoreTestSuite) TestInvalidationSurfacesOnUse() {
	store, err := conversation.NewSessionBeanStore(s.session, "abc")
	s.NoError(err)

	s.session.Invalidated = true
	s.Error(store.Put("cart", "late"))
	_, err = store.Keys()
	s.Error(err)
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
