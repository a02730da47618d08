package web

import (
	"net/http"

	"github.com/centraunit/conversation"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// managerAttr is the session attribute the conversation manager lives under.
const managerAttr = "conversation.manager"

// TargetResolver chooses the outgoing target for a request. It runs before
// the handler so the conversation id can be stamped onto the target while
// the conversation scope is active.
type TargetResolver func(*http.Request) conversation.RequestTarget

// Adapter wires the conversation propagator into request processing. One
// adapter serves the whole application; per-request state (the registry, the
// conversation context) is assembled fresh on every request.
type Adapter struct {
	sessions *SessionStore
	resolve  TargetResolver
	log      zerolog.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithAdapterLogger sets the logger for the adapter and the propagators it
// creates.
func WithAdapterLogger(log zerolog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.log = log
	}
}

// NewAdapter creates an adapter resolving targets with resolve and sessions
// from sessions.
func NewAdapter(sessions *SessionStore, resolve TargetResolver, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		sessions: sessions,
		resolve:  resolve,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// requestRegistry assembles the per-request registry: the session's
// conversation manager (created on first use), its current conversation and
// a fresh conversation context.
func (a *Adapter) requestRegistry(sess *Session) (*conversation.Registry, error) {
	raw, err := sess.Attribute(managerAttr)
	if err != nil {
		return nil, errors.Wrap(err, "loading conversation manager")
	}
	manager, ok := raw.(*conversation.SessionManager)
	if !ok {
		manager = conversation.NewSessionManager(sess, conversation.WithManagerLogger(a.log))
		if err := sess.SetAttribute(managerAttr, manager); err != nil {
			return nil, errors.Wrap(err, "storing conversation manager")
		}
	}

	registry := conversation.NewRegistry()
	if err := conversation.Register(registry, manager.Conversation()); err != nil {
		return nil, err
	}
	if err := conversation.Register[conversation.Manager](registry, manager); err != nil {
		return nil, err
	}
	if err := conversation.Register(registry, conversation.NewContext()); err != nil {
		return nil, err
	}
	return registry, nil
}

// Middleware runs the two propagator hooks around next: target resolution
// and scope activation before, teardown after. Teardown is deferred so it
// runs on every exit from the handler, panics included.
func (a *Adapter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := a.sessions.Session(w, r)

		registry, err := a.requestRegistry(sess)
		if err != nil {
			a.log.Error().Err(err).Msg("conversation setup failed")
			http.Error(w, "conversation setup failed", http.StatusInternalServerError)
			return
		}

		propagator := conversation.NewPropagator(registry, conversation.WithLogger(a.log))
		target := a.resolve(r)

		defer func() {
			if err := propagator.OnTeardown(); err != nil {
				a.log.Error().Err(err).Msg("conversation teardown failed")
			}
		}()

		if err := propagator.OnTargetResolved(target, r, sess); err != nil {
			a.log.Error().Err(err).Msg("conversation activation failed")
			http.Error(w, "conversation activation failed", http.StatusInternalServerError)
			return
		}

		ctx := WithTarget(r.Context(), target)
		if conv, err := conversation.Lookup[*conversation.Conversation](registry); err == nil {
			ctx = WithConversation(ctx, conv)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
