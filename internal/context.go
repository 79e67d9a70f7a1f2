package internal

// Context is a value looked up through the owner chain. Owners that never
// set it see the initial value.
type Context struct {
	initial any
}

func (r *Runtime) NewContext(initial any) *Context {
	return &Context{initial: initial}
}

func (c *Context) Value() any {
	r := LookupRuntime()
	if r == nil {
		return c.initial
	}

	for o := r.CurrentOwner(); o != nil; o = o.parent {
		if v, ok := o.context[c]; ok {
			return v
		}
	}

	return c.initial
}

// Set stores v in the current owner. Outside any owner it does nothing.
func (c *Context) Set(v any) {
	r := LookupRuntime()
	if r == nil {
		return
	}

	if o := r.CurrentOwner(); o != nil {
		o.context[c] = v
	}
}
