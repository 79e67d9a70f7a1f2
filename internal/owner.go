package internal

import (
	"iter"
	"runtime/debug"
)

// Owner scopes the lifetime of reactive nodes. Disposing an owner disposes its
// children (newest first), then runs its cleanups, then its dispose hooks.
type Owner struct {
	// cleanup functions to be called once, on the next reset or disposal
	cleanups []func()

	// called on every disposal
	disposers []func()

	// error handlers for failures of descendants
	catchers []func(any)

	// the context values of this owner
	context map[*Context]any

	parent       *Owner
	prevSibling  *Owner
	nextSibling  *Owner
	childrenHead *Owner
}

func (r *Runtime) NewOwner() *Owner {
	return &Owner{
		context: make(map[*Context]any),
	}
}

// Run calls fn with o as the current owner. Panics are handed to the owner's
// error handlers; without any they propagate.
func (o *Owner) Run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if len(o.catchers) == 0 {
				panic(r)
			}

			o.catch(&PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	GetRuntime().tracker.RunWithOwner(o, func() {
		err = fn()
	})

	return err
}

func (parent *Owner) AddChild(child *Owner) {
	child.detach()

	child.parent = parent
	child.prevSibling = nil
	child.nextSibling = parent.childrenHead

	if parent.childrenHead != nil {
		parent.childrenHead.prevSibling = child
	}

	parent.childrenHead = child
}

func (o *Owner) detach() {
	parent := o.parent
	if parent == nil {
		return
	}

	if o.prevSibling != nil {
		o.prevSibling.nextSibling = o.nextSibling
	} else {
		parent.childrenHead = o.nextSibling
	}
	if o.nextSibling != nil {
		o.nextSibling.prevSibling = o.prevSibling
	}

	o.parent = nil
	o.prevSibling = nil
	o.nextSibling = nil
}

func (n *Owner) Children() iter.Seq[*Owner] {
	return func(yield func(*Owner) bool) {
		child := n.childrenHead

		for child != nil {
			// read ahead, yield may detach the child
			next := child.nextSibling
			if !yield(child) {
				return
			}

			child = next
		}
	}
}

func (n *Owner) Parent() *Owner {
	return n.parent
}

func (n *Owner) Dispose() {
	n.Reset()

	for i := 0; i < len(n.disposers); i++ {
		n.disposers[i]()
	}

	n.detach()
}

// Reset disposes the children and runs pending cleanups, leaving the owner
// itself usable.
func (n *Owner) Reset() {
	n.DisposeChildren()

	cleanups := n.cleanups
	n.cleanups = nil

	for i := 0; i < len(cleanups); i++ {
		cleanups[i]()
	}
}

func (n *Owner) DisposeChildren() {
	for child := range n.Children() {
		child.Dispose()
	}
	n.childrenHead = nil
}

func (n *Owner) OnCleanup(fn func()) {
	n.cleanups = append(n.cleanups, fn)
}

func (n *Owner) OnDispose(fn func()) {
	n.disposers = append(n.disposers, fn)
}

func (n *Owner) OnError(fn func(any)) {
	n.catchers = append(n.catchers, fn)
}

// catch hands err to the nearest owner, starting at n, with error handlers.
// It reports whether any handler was found.
func (n *Owner) catch(err any) bool {
	for o := n; o != nil; o = o.parent {
		if len(o.catchers) == 0 {
			continue
		}

		for _, catcher := range o.catchers {
			catcher(err)
		}
		return true
	}

	return false
}
