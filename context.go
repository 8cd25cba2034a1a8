package cascade

// Context is the mutable state shared by every hook in one walk. It holds
// the positional arguments supplied by the argument resolver, values
// accumulated by hooks for later phases, and the cancellation flag.
//
// A Context is created for a single walk, owned exclusively by it, and
// discarded at the end. Hooks observe it strictly in traversal order, so
// no locking is needed. It is not reentrant: a hook must not start another
// walk with the same Context.
type Context struct {
	args      []string
	values    map[string]any
	cancelled bool
}

// NewContext creates an execution context carrying the resolved positional
// arguments for the invocation.
func NewContext(args []string) *Context {
	return &Context{args: args, values: make(map[string]any)}
}

// Args returns the positional arguments supplied at creation.
func (c *Context) Args() []string { return c.args }

// SetValue stores a value for hooks running later in the walk. A before
// hook on a parent typically stores loaded configuration here for the
// leaf's run hook.
func (c *Context) SetValue(key string, v any) {
	c.values[key] = v
}

// Value returns a value stored by an earlier hook.
func (c *Context) Value(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Cancel sets the cancellation flag. The walker checks it after each hook
// returns; further descent and the run phase are abandoned, while after
// hooks for nodes already entered still fire.
func (c *Context) Cancel() { c.cancelled = true }

// Cancelled reports whether the cancellation flag is set.
func (c *Context) Cancelled() bool { return c.cancelled }
