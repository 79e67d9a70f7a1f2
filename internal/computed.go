package internal

import "sync/atomic"

// Computed is a lazily evaluated derivation. It is only recomputed by a read
// that finds it dirty, and only becomes dirty when a dependency is written.
type Computed struct {
	*Owner
	Source

	// the runtime that created the node, woken when the node turns dirty
	runtime *Runtime
	compute func() (any, error)

	value any
	deps  []Dependency

	// bumped on every notification; a recompute that started before the last
	// bump cannot clear the dirty flag
	stamp atomic.Uint64
}

func (r *Runtime) NewComputed(compute func() (any, error)) *Computed {
	c := &Computed{
		Owner:   r.NewOwner(),
		runtime: r,
		compute: compute,
	}
	c.id = nextNodeID()
	c.AddFlag(FlagDirty)

	if parent := r.CurrentOwner(); parent != nil {
		parent.AddChild(c.Owner)
	}

	c.OnDispose(func() {
		c.AddFlag(FlagDisposed)
		unsubscribeAll(c, c.deps)
		c.deps = nil
		c.value = nil
	})

	return c
}

func (c *Computed) ID() NodeID {
	return c.Source.ID()
}

// Dirty reports whether the next read will recompute.
func (c *Computed) Dirty() bool {
	return c.HasFlag(FlagDirty)
}

// Deps returns the ids of the sources read by the last computation.
func (c *Computed) Deps() []NodeID {
	return dependencyIDs(c.deps)
}

func (c *Computed) notify() {
	if c.HasFlag(FlagDisposed) {
		return
	}

	c.stamp.Add(1)

	// a failed computed is already dirty, but its readers still need to hear
	// about the write so they can retry
	if c.AddFlag(FlagDirty) || c.HasFlag(FlagFailed) {
		c.propagate()

		// a computed nobody subscribes to is read by whoever waits on the
		// runtime, such as a frame loop
		c.runtime.scheduler.signal()
	}
}

// Get returns the cached value, recomputing first when dirty. A failed
// computation leaves the node dirty and returns a *ComputeError.
func (c *Computed) Get() (any, error) {
	r := LookupRuntime()

	if c.HasFlag(FlagDisposed) {
		c.track(r)
		return c.value, nil
	}

	// reading a computed from its own computation must not subscribe it to
	// itself
	if c.HasFlag(FlagRunning) {
		return nil, &ComputeError{Node: c.ID(), Err: ErrCycle}
	}

	if c.HasFlag(FlagDirty) {
		if r == nil {
			// the computation needs a tracker; it is dropped again once the
			// outermost recompute of this goroutine is done
			r = GetRuntime()
			defer ReleaseRuntime()
		}

		if err := c.recompute(r); err != nil {
			c.track(r)
			return nil, err
		}
	}

	c.track(r)

	return c.value, nil
}

func (c *Computed) track(r *Runtime) {
	if r != nil {
		r.tracker.Track(&c.Source, c.Version())
	}
}

func (c *Computed) recompute(r *Runtime) error {
	c.AddFlag(FlagRunning)
	defer c.RemoveFlag(FlagRunning)

	start := c.stamp.Load()

	var value any
	deps, err := r.tracker.RunWithComputation(nil, func() error {
		v, err := c.compute()
		value = v
		return err
	})

	if c.HasFlag(FlagDisposed) {
		return nil
	}

	if err != nil {
		merged := mergeDeps(c.deps, deps)
		rewire(c, c.deps, merged)
		c.deps = merged
		c.AddFlag(FlagFailed)

		return &ComputeError{Node: c.ID(), Err: err}
	}

	rewire(c, c.deps, deps)
	c.deps = deps
	c.RemoveFlag(FlagFailed)

	c.mu.Lock()
	c.value = value
	c.version++
	c.mu.Unlock()

	if c.stamp.Load() != start || stale(deps) {
		// written to while computing: the value is consistent with what was
		// read, but readers must come back for a fresher one
		c.propagate()
		return nil
	}

	c.RemoveFlag(FlagDirty)
	return nil
}
