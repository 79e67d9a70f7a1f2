package internal

import "runtime/debug"

// Dependency records one source read during a tracked execution, together with
// the version observed by the first read.
type Dependency struct {
	Source  *Source
	Version uint64
}

type trackingFrame struct {
	deps      []Dependency
	seen      map[*Source]struct{}
	untracked int
}

// Tracker attributes source reads to the node currently executing. Each
// goroutine has its own runtime, and therefore its own tracker.
type Tracker struct {
	frames []*trackingFrame

	currentOwner *Owner // for lifecycle/cleanup tracking
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Push starts a tracked execution; reads are attributed to it until Pop.
func (t *Tracker) Push() {
	t.frames = append(t.frames, &trackingFrame{
		seen: make(map[*Source]struct{}),
	})
}

// Pop ends the innermost tracked execution and returns the sources it read,
// in first-read order.
func (t *Tracker) Pop() []Dependency {
	if len(t.frames) == 0 {
		return nil
	}

	top := t.frames[len(t.frames)-1]
	t.frames[len(t.frames)-1] = nil
	t.frames = t.frames[:len(t.frames)-1]

	return top.deps
}

func (t *Tracker) top() *trackingFrame {
	if len(t.frames) == 0 {
		return nil
	}
	return t.frames[len(t.frames)-1]
}

// Track records a read of src at the given version. Reads outside any tracked
// execution, or inside Untracked, record nothing.
func (t *Tracker) Track(src *Source, version uint64) {
	top := t.top()
	if top == nil || top.untracked > 0 {
		return
	}

	if _, ok := top.seen[src]; ok {
		return
	}
	top.seen[src] = struct{}{}
	top.deps = append(top.deps, Dependency{Source: src, Version: version})
}

// RunWithComputation runs fn tracked, with owner as the current owner. The
// tracking frame is popped on every exit path and a panic in fn is returned as
// a *PanicError.
func (t *Tracker) RunWithComputation(owner *Owner, fn func() error) (deps []Dependency, err error) {
	prevOwner := t.currentOwner
	t.currentOwner = owner
	t.Push()

	defer func() {
		deps = t.Pop()
		t.currentOwner = prevOwner

		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return nil, fn()
}

func (t *Tracker) RunWithOwner(owner *Owner, fn func()) {
	prev := t.currentOwner
	t.currentOwner = owner
	defer func() { t.currentOwner = prev }()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	top := t.top()
	if top == nil {
		fn()
		return
	}

	top.untracked++
	defer func() { top.untracked-- }()

	fn()
}

func (t *Tracker) CurrentOwner() *Owner {
	return t.currentOwner
}
