package conversation

// Package conversation synchronizes a service registry's conversation scope
// with a web request lifecycle. A conversation is a unit of work that can
// span multiple requests; the propagator restores it from an incoming
// request, activates its context for the duration of the request, and stamps
// its id onto outgoing targets so the next request can find it again.

// Conversation is a unit of work identified by an opaque string id.
// A transient conversation lives for a single request; a long-running one is
// kept by its manager across requests until explicitly ended.
//
// A Conversation is scoped to a single request flow and is not shared across
// goroutines.
type Conversation struct {
	id        string
	transient bool
}

// NewConversation creates a transient conversation with the given id.
func NewConversation(id string) *Conversation {
	return &Conversation{id: id, transient: true}
}

// ID returns the conversation identifier.
func (c *Conversation) ID() string {
	return c.id
}

// IsTransient reports whether the conversation ends with the current request.
func (c *Conversation) IsTransient() bool {
	return c.transient
}

// Begin promotes the conversation to long-running.
func (c *Conversation) Begin() {
	c.transient = false
}

// End demotes the conversation back to transient.
func (c *Conversation) End() {
	c.transient = true
}

// SwitchTo repoints the conversation at the stored long-running conversation
// identified by id.
func (c *Conversation) SwitchTo(id string) {
	c.id = id
	c.transient = false
}

// Manager owns conversation state transitions. The propagator only ever asks
// it to restore a conversation by id and to clean up at request end; how
// conversations are stored between requests is the manager's concern.
type Manager interface {
	// BeginOrRestore switches the current conversation to the stored one
	// identified by id, or begins a fresh transient conversation when id is
	// empty or unknown.
	BeginOrRestore(id string) error

	// Cleanup runs at request end: long-running conversations are persisted
	// for later restoration, transient ones are reclaimed.
	Cleanup() error
}
