package conversation

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Propagator is the request-lifecycle hook that ties the conversation scope
// to request processing. The surrounding web adapter invokes
// OnTargetResolved once the request's outgoing target is known and
// OnTeardown unconditionally at the end of the request, error paths
// included.
type Propagator struct {
	registry *Registry
	log      zerolog.Logger
}

// PropagatorOption configures a Propagator.
type PropagatorOption func(*Propagator)

// WithLogger sets the logger the propagator traces its decisions to.
func WithLogger(log zerolog.Logger) PropagatorOption {
	return func(p *Propagator) {
		p.log = log
	}
}

// NewPropagator creates a propagator resolving its collaborators from the
// given registry. The registry must resolve *Conversation, Manager and
// *Context uniquely; anything else is a configuration error surfaced on
// first use.
func NewPropagator(registry *Registry, opts ...PropagatorOption) *Propagator {
	p := &Propagator{
		registry: registry,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnTargetResolved restores the conversation a target or request points at,
// activates the conversation context, and propagates a long-running
// conversation's id onto the outgoing target.
//
// The conversation id can arrive two ways: page metadata for a page target,
// or the cid request parameter after a redirect to a bookmarkable path.
func (p *Propagator) OnTargetResolved(target RequestTarget, req *http.Request, session SessionAttributes) error {
	var page *Page
	if pageTarget, ok := target.(*PageTarget); ok {
		page = pageTarget.Page()
	}

	specifiedCid := ""
	if page != nil {
		specifiedCid = page.Metadata(MetadataKey)
	} else if req != nil {
		specifiedCid = req.URL.Query().Get(CidParam)
	}

	conv, err := Lookup[*Conversation](p.registry)
	if err != nil {
		return err
	}
	manager, err := Lookup[Manager](p.registry)
	if err != nil {
		return err
	}
	convCtx, err := Lookup[*Context](p.registry)
	if err != nil {
		return err
	}

	// Restore only when the request names a conversation we aren't already in.
	if specifiedCid != "" && specifiedCid != conv.ID() {
		p.log.Debug().Str("cid", specifiedCid).Msg("restoring conversation")
		if err := manager.BeginOrRestore(specifiedCid); err != nil {
			return &RestoreError{ConversationID: specifiedCid, Err: err}
		}
	}

	if !convCtx.IsActive() {
		store, err := NewSessionBeanStore(session, conv.ID())
		if err != nil {
			return err
		}
		convCtx.SetBeanStore(store)
		convCtx.SetActive(true)
	}

	if !conv.IsTransient() {
		// A conversation id survives a redirect only through a bookmarkable
		// target's parameter map; other redirect targets expose no way to
		// edit their URL, so they are left alone.
		if redirect, ok := target.(*BookmarkableRedirect); ok {
			if !redirect.PageParameters().ContainsKey(CidParam) {
				redirect.PageParameters().Add(CidParam, conv.ID())
				p.log.Debug().Str("cid", conv.ID()).Str("target", redirect.TargetName()).Msg("propagated conversation to redirect")
			}
		}
		if page != nil {
			page.SetMetadata(MetadataKey, conv.ID())
			p.log.Debug().Str("cid", conv.ID()).Str("page", page.Name()).Msg("propagated conversation to page")
		}
	}

	return nil
}

// OnTeardown deactivates the conversation context after the manager has had
// its chance to persist or reclaim the current conversation. It is safe to
// call when activation never happened and must run even when target
// resolution failed, so an active context never leaks into the next request.
func (p *Propagator) OnTeardown() error {
	convCtx, err := Lookup[*Context](p.registry)
	if err != nil {
		return err
	}
	if !convCtx.IsActive() {
		return nil
	}

	manager, err := Lookup[Manager](p.registry)
	if err != nil {
		convCtx.SetActive(false)
		return err
	}

	cleanupErr := manager.Cleanup()
	// Deactivate unconditionally so the activation invariant holds even when
	// cleanup fails.
	convCtx.SetActive(false)
	return cleanupErr
}
