package internal

// Signal is a writable source. It is safe for concurrent use; the value is
// guarded by the embedded Source lock.
type Signal struct {
	Source

	value any
	equal func(a, b any) bool
}

func (r *Runtime) NewSignal(initial any) *Signal {
	s := &Signal{value: initial}
	s.id = nextNodeID()

	return s
}

// SetEqual installs a predicate used by Write to drop writes that do not
// change the value. Without one every write bumps the version.
func (s *Signal) SetEqual(equal func(a, b any) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.equal = equal
}

// Read returns the current value and records the read in the calling
// goroutine's tracked execution, if any.
func (s *Signal) Read() any {
	s.mu.RLock()
	value, version := s.value, s.version
	s.mu.RUnlock()

	if r := LookupRuntime(); r != nil {
		r.tracker.Track(&s.Source, version)
	}

	return value
}

// Peek returns the current value without tracking.
func (s *Signal) Peek() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.value
}

// Write installs v, bumps the version and notifies subscribers. Subscribers
// are only marked dirty or pending; nothing runs here.
func (s *Signal) Write(v any) {
	s.mu.Lock()
	if s.equal != nil && s.equal(s.value, v) {
		s.mu.Unlock()
		return
	}

	s.value = v
	subs := s.bump()
	s.mu.Unlock()

	notifyAll(subs)
}

// Update replaces the value with fn(current) atomically with respect to other
// writers. fn must not read s.
func (s *Signal) Update(fn func(any) any) {
	s.mu.Lock()
	next := fn(s.value)
	if s.equal != nil && s.equal(s.value, next) {
		s.mu.Unlock()
		return
	}

	s.value = next
	subs := s.bump()
	s.mu.Unlock()

	notifyAll(subs)
}
