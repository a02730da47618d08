package conversation

// Context is the per-request activation state of the conversation scope.
// It starts inactive, is activated at most once while the request target is
// being resolved, and is deactivated exactly once at teardown.
//
// A Context is scoped to a single request flow; it is never shared across
// concurrent requests, so access is unsynchronized.
type Context struct {
	active bool
	store  BeanStore
}

// NewContext creates an inactive conversation context.
func NewContext() *Context {
	return &Context{}
}

// IsActive reports whether the conversation scope is active.
func (c *Context) IsActive() bool {
	return c.active
}

// SetActive flips the activation state. Activating an already-active context
// or deactivating an inactive one is a no-op for callers that guard with
// IsActive first; the setter itself just records the flag.
func (c *Context) SetActive(active bool) {
	c.active = active
	if !active {
		c.store = nil
	}
}

// SetBeanStore attaches the backing store the active scope resolves
// conversation-scoped instances from.
func (c *Context) SetBeanStore(store BeanStore) {
	c.store = store
}

// BeanStore returns the attached backing store, or nil when the context has
// not been activated.
func (c *Context) BeanStore() BeanStore {
	return c.store
}
