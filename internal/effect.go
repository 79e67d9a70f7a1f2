package internal

// Effect is a side-effecting callback that runs once on creation and again,
// from its runtime's scheduler, after any of its dependencies is written.
type Effect struct {
	*Owner
	ReactiveNode

	runtime *Runtime
	fn      func() error

	deps []Dependency
}

// NewEffect creates an effect and runs it immediately. A failing first run is
// reported like any other effect failure.
func (r *Runtime) NewEffect(fn func() error) *Effect {
	e := &Effect{
		Owner:   r.NewOwner(),
		runtime: r,
		fn:      fn,
	}
	e.id = nextNodeID()

	if parent := r.CurrentOwner(); parent != nil {
		parent.AddChild(e.Owner)
	}

	e.OnDispose(e.release)

	if err := e.run(); err != nil {
		r.report(e, err)
	}

	return e
}

// Deps returns the ids of the sources read by the last execution.
func (e *Effect) Deps() []NodeID {
	return dependencyIDs(e.deps)
}

func (e *Effect) Disposed() bool {
	return e.HasFlag(FlagDisposed)
}

func (e *Effect) notify() {
	if e.HasFlag(FlagDisposed) {
		return
	}

	if e.AddFlag(FlagPending) {
		e.runtime.scheduler.enqueue(e)
	}
}

// Dispose unsubscribes the effect from everything it depends on. An effect
// disposing itself finishes its current run first.
func (e *Effect) Dispose() {
	if e.HasFlag(FlagRunning) {
		e.release()
		return
	}

	e.Owner.Dispose()
}

func (e *Effect) release() {
	e.AddFlag(FlagDisposed)
	e.RemoveFlag(FlagPending)

	unsubscribeAll(e, e.deps)
	e.deps = nil
}

func (e *Effect) run() error {
	r := e.runtime

	e.AddFlag(FlagRunning)

	// cleanups and nested effects belong to the previous run
	e.Owner.Reset()

	deps, err := r.tracker.RunWithComputation(e.Owner, e.fn)

	e.RemoveFlag(FlagRunning)

	if e.HasFlag(FlagDisposed) {
		e.Owner.Dispose()
		if err != nil {
			return &EffectError{Node: e.ID(), Err: err}
		}
		return nil
	}

	if err != nil {
		// stay subscribed to everything known so the next write retries
		merged := mergeDeps(e.deps, deps)
		rewire(e, e.deps, merged)
		e.deps = merged

		return &EffectError{Node: e.ID(), Err: err}
	}

	rewire(e, e.deps, deps)
	e.deps = deps

	if stale(deps) {
		e.notify()
	}

	return nil
}
