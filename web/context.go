package web

import (
	"context"

	"github.com/centraunit/conversation"
)

type targetKey struct{}

type conversationKey struct{}

// WithTarget returns a new Context carrying the request's resolved target.
func WithTarget(ctx context.Context, target conversation.RequestTarget) context.Context {
	return context.WithValue(ctx, targetKey{}, target)
}

// TargetFrom returns the resolved target stored in ctx, if any.
func TargetFrom(ctx context.Context) (conversation.RequestTarget, bool) {
	t, ok := ctx.Value(targetKey{}).(conversation.RequestTarget)
	return t, ok
}

// WithConversation returns a new Context carrying the current conversation.
func WithConversation(ctx context.Context, conv *conversation.Conversation) context.Context {
	return context.WithValue(ctx, conversationKey{}, conv)
}

// ConversationFrom returns the conversation stored in ctx, if any.
func ConversationFrom(ctx context.Context) (*conversation.Conversation, bool) {
	c, ok := ctx.Value(conversationKey{}).(*conversation.Conversation)
	return c, ok
}
