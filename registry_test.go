package conversation_test

import (
	"errors"
	"testing"

	"github.com/centraunit/conversation"
	"github.com/centraunit/conversation/mock"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
	registry *conversation.Registry
}

func (s *RegistryTestSuite) SetupTest() {
	s.registry = conversation.NewRegistry()
}

func (s *RegistryTestSuite) TestUniqueLookup() {
	conv := conversation.NewConversation("abc")
	s.NoError(conversation.Register(s.registry, conv))

	resolved, err := conversation.Lookup[*conversation.Conversation](s.registry)
	s.NoError(err)
	s.Same(conv, resolved)
}

func (s *RegistryTestSuite) TestInterfaceLookup() {
	manager := &mock.RecordingManager{}
	s.NoError(conversation.Register[conversation.Manager](s.registry, manager))

	resolved, err := conversation.Lookup[conversation.Manager](s.registry)
	s.NoError(err)
	s.Same(manager, resolved.(*mock.RecordingManager))
}

func (s *RegistryTestSuite) TestUnsatisfiedResolution() {
	_, err := conversation.Lookup[conversation.Manager](s.registry)
	s.Error(err)
	var unsatisfied *conversation.UnsatisfiedResolutionError
	s.True(errors.As(err, &unsatisfied))
	s.Contains(err.Error(), "unable to resolve")
}

func (s *RegistryTestSuite) TestAmbiguousResolution() {
	s.NoError(conversation.Register[conversation.Manager](s.registry, &mock.RecordingManager{}))
	s.NoError(conversation.Register[conversation.Manager](s.registry, &mock.RecordingManager{}))

	_, err := conversation.Lookup[conversation.Manager](s.registry)
	s.Error(err)
	var ambiguous *conversation.AmbiguousResolutionError
	s.True(errors.As(err, &ambiguous))
	s.Equal(2, ambiguous.Count)
}

func (s *RegistryTestSuite) TestNilRegistration() {
	var manager *mock.RecordingManager
	err := conversation.Register[conversation.Manager](s.registry, manager)
	var nilErr *conversation.NilServiceError
	s.True(errors.As(err, &nilErr))
}

func (s *RegistryTestSuite) TestDistinctTypesCoexist() {
	conv := conversation.NewConversation("abc")
	convCtx := conversation.NewContext()
	s.NoError(conversation.Register(s.registry, conv))
	s.NoError(conversation.Register(s.registry, convCtx))
	s.NoError(conversation.Register[conversation.Manager](s.registry, &mock.RecordingManager{}))

	resolvedConv, err := conversation.Lookup[*conversation.Conversation](s.registry)
	s.NoError(err)
	s.Same(conv, resolvedConv)

	resolvedCtx, err := conversation.Lookup[*conversation.Context](s.registry)
	s.NoError(err)
	s.Same(convCtx, resolvedCtx)
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}
