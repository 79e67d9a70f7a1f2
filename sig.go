// Package revue is the reactive core of a terminal UI framework: signals,
// lazily computed derivations and effects flushed by a per-goroutine
// scheduler.
package revue

import (
	"github.com/AnatoleLucet/revue/internal"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// NodeID identifies a signal, computed or effect.
type NodeID = internal.NodeID

type (
	PanicError      = internal.PanicError
	ComputeError    = internal.ComputeError
	EffectError     = internal.EffectError
	DivergenceError = internal.DivergenceError
	FlushStats      = internal.FlushStats
	Options         = internal.Options
)

// DefaultMaxFlushIterations bounds the passes of one Flush unless
// configured otherwise.
const DefaultMaxFlushIterations = internal.DefaultMaxFlushIterations

// ErrCycle is reported by a computed that depends on itself.
var ErrCycle = internal.ErrCycle

type Signal[T any] struct {
	signal *internal.Signal
}

// SignalOption configures a signal at construction.
type SignalOption[T any] func(*internal.Signal)

// WithEqual drops writes for which equal(old, new) holds.
func WithEqual[T any](equal func(a, b T) bool) SignalOption[T] {
	return func(s *internal.Signal) {
		s.SetEqual(func(a, b any) bool { return equal(as[T](a), as[T](b)) })
	}
}

// NewSignal creates your tipical read/write signal. It can be read and written
// from any goroutine.
func NewSignal[T any](initial T, opts ...SignalOption[T]) *Signal[T] {
	s := internal.GetRuntime().NewSignal(initial)
	for _, opt := range opts {
		opt(s)
	}

	return &Signal[T]{s}
}

// Read the current value of the signal, tracking the dependency if within a reactive context.
func (s *Signal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Peek reads the current value without tracking.
func (s *Signal[T]) Peek() T {
	return as[T](s.signal.Peek())
}

// Write a new value to the signal, marking its dependents dirty or pending.
// Effects only run on the next Flush.
func (s *Signal[T]) Write(v T) {
	s.signal.Write(v)
}

// Update writes fn(current) atomically with respect to other writers.
func (s *Signal[T]) Update(fn func(T) T) {
	s.signal.Update(func(v any) any { return fn(as[T](v)) })
}

func (s *Signal[T]) ID() NodeID { return s.signal.ID() }

// Version is incremented by every accepted write.
func (s *Signal[T]) Version() uint64 { return s.signal.Version() }

// Subscribers lists the computeds and effects currently depending on the signal.
func (s *Signal[T]) Subscribers() []NodeID { return s.signal.Subscribers() }

type Computed[T any] struct {
	computed *internal.Computed
}

// NewComputed creates a computed signal that derives its value from other signals (its a memo).
// It computes lazily, on the first read and on reads following a dependency write.
func NewComputed[T any](compute func() T) *Computed[T] {
	return &Computed[T]{
		internal.GetRuntime().NewComputed(func() (any, error) {
			return compute(), nil
		}),
	}
}

// NewComputedE is NewComputed for a derivation that can fail. A failed
// computation caches nothing and is retried on the next read.
func NewComputedE[T any](compute func() (T, error)) *Computed[T] {
	return &Computed[T]{
		internal.GetRuntime().NewComputed(func() (any, error) {
			return compute()
		}),
	}
}

// Read the current value of the computed signal, tracking the dependency if within a reactive context.
// It panics with a *ComputeError if the computation fails, which fails the
// enclosing computed or effect in turn.
func (c *Computed[T]) Read() T {
	v, err := c.computed.Get()
	if err != nil {
		panic(err)
	}

	return as[T](v)
}

// Get is Read returning the failure instead of panicking.
func (c *Computed[T]) Get() (T, error) {
	v, err := c.computed.Get()
	if err != nil {
		var zero T
		return zero, err
	}

	return as[T](v), nil
}

// Dirty reports whether the next read recomputes.
func (c *Computed[T]) Dirty() bool { return c.computed.Dirty() }

// Deps lists the sources read by the last computation.
func (c *Computed[T]) Deps() []NodeID { return c.computed.Deps() }

func (c *Computed[T]) ID() NodeID { return c.computed.ID() }

// Dispose unsubscribes the computed from its dependencies.
func (c *Computed[T]) Dispose() { c.computed.Dispose() }

type Effect struct {
	effect *internal.Effect
}

// NewEffect creates a reactive effect. It runs once immediately, then again on
// the Flush following any write to what it read during its last run.
func NewEffect(fn func()) *Effect {
	return NewEffectE(func() error {
		fn()
		return nil
	})
}

// NewEffectE is NewEffect for a callback that can fail. Failures are logged
// and handed to the nearest owner's OnError handlers; the effect stays
// subscribed and runs again on the next trigger.
func NewEffectE(fn func() error) *Effect {
	return &Effect{internal.GetRuntime().NewEffect(fn)}
}

// Dispose stops the effect. An effect disposing itself completes its current run.
func (e *Effect) Dispose() { e.effect.Dispose() }

func (e *Effect) Disposed() bool { return e.effect.Disposed() }

// Deps lists the sources read by the last run.
func (e *Effect) Deps() []NodeID { return e.effect.Deps() }

func (e *Effect) ID() NodeID { return e.effect.ID() }

// Flush runs the effects made pending on the calling goroutine's runtime
// until none are left. It returns a *DivergenceError when effects keep
// re-triggering each other past the configured bound.
func Flush() error {
	_, err := internal.GetRuntime().Flush()
	return err
}

// LastFlush returns the statistics of the calling goroutine's last Flush.
func LastFlush() FlushStats {
	return internal.GetRuntime().LastFlush()
}

// Pending is signalled whenever an effect of the calling goroutine becomes
// pending, including through writes from other goroutines.
func Pending() <-chan struct{} {
	return internal.GetRuntime().Wake()
}

// Configure tunes the calling goroutine's runtime.
func Configure(opts Options) {
	internal.GetRuntime().Configure(opts)
}

// Release drops the calling goroutine's runtime.
func Release() {
	internal.ReleaseRuntime()
}

// NewBatch runs fn and flushes once the outermost batch completes.
func NewBatch(fn func()) error {
	return internal.GetRuntime().NewBatch(fn)
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	r := internal.LookupRuntime()
	if r == nil {
		return fn()
	}

	r.Untrack(func() { result = fn() })
	return result
}

// Tracked runs fn in its own tracked execution and returns the ids of the
// signals and computeds it read.
func Tracked(fn func()) (ids []NodeID) {
	tracker := internal.GetRuntime().Tracker()

	tracker.Push()
	defer func() {
		for _, dep := range tracker.Pop() {
			ids = append(ids, dep.Source.ID())
		}
	}()

	fn()

	return ids
}

// OnCleanup registers a function to be called when the current owner is disposed,
// or before the current effect runs again.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

// OnSettled registers a function to be called once the next Flush has run
// every pending effect.
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}

type Context[T any] struct {
	ctx *internal.Context
}

// NewContext creates a new reactive context with an initial value.
func NewContext[T any](initial T) *Context[T] {
	return &Context[T]{
		internal.GetRuntime().NewContext(initial),
	}
}

// Value retrieves the current value of the context,
// inheriting from parent owners if not set in the current owner.
func (c *Context[T]) Value() T {
	return as[T](c.ctx.Value())
}

// Set a new value for the context in the current owner.
func (c *Context[T]) Set(value T) {
	c.ctx.Set(value)
}

type Owner struct {
	owner *internal.Owner
}

// NewOwner creates a new reactive owner.
// An owner manages the lifecycle of reactive nodes created within its context.
// Created inside another owner or a running effect, it becomes its child.
func NewOwner() *Owner {
	r := internal.GetRuntime()
	o := r.NewOwner()
	if parent := r.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return &Owner{o}
}

// Run a function within the context of this owner.
// Each reactive node created within the function will be a child of this owner,
// and will be disposed when owner.Dispose() is called on this owner.
func (o *Owner) Run(fn func() error) error { return o.owner.Run(fn) }

// Dispose this owner and all its children.
func (o *Owner) Dispose() { o.owner.Dispose() }

// Add a cleanup function to be called ONCE when the owner is disposed.
func (o *Owner) OnCleanup(fn func()) { o.owner.OnCleanup(fn) }

// Add a function to be called when the owner is disposed (each time Dispose is called).
func (o *Owner) OnDispose(fn func()) { o.owner.OnDispose(fn) }

// Add a function to be called when a failure occurs within this owner: a
// panic in Run, or a failing effect among its descendants.
// If no error listener is registered, panics in Run propagate as usual.
func (o *Owner) OnError(fn func(any)) { o.owner.OnError(fn) }
