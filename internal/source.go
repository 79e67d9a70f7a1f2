package internal

import (
	"slices"
	"sync"
)

// Subscriber is a node that depends on one or more sources and wants to hear
// about their writes.
type Subscriber interface {
	ID() NodeID
	notify()
}

// Source is a versioned value holder with its own subscriber set. Signals and
// computeds both embed it so either can be tracked as a dependency.
type Source struct {
	ReactiveNode

	mu      sync.RWMutex
	version uint64
	subs    []Subscriber
}

// Version returns the number of writes (or recomputes) the source has seen.
func (s *Source) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// Subscribers returns the ids of the current subscribers, in subscription order.
func (s *Source) Subscribers() []NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]NodeID, len(s.subs))
	for i, sub := range s.subs {
		ids[i] = sub.ID()
	}
	return ids
}

func (s *Source) subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !slices.Contains(s.subs, sub) {
		s.subs = append(s.subs, sub)
	}
}

func (s *Source) unsubscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index := slices.Index(s.subs, sub); index != -1 {
		s.subs = slices.Delete(s.subs, index, index+1)
	}
}

// bump increments the version and snapshots the subscriber list.
// The caller must hold s.mu for writing.
func (s *Source) bump() []Subscriber {
	s.version++

	// clone so subscribers can (un)subscribe while being notified
	return slices.Clone(s.subs)
}

// propagate notifies the current subscribers without changing the version.
func (s *Source) propagate() {
	s.mu.RLock()
	subs := slices.Clone(s.subs)
	s.mu.RUnlock()

	notifyAll(subs)
}

// notifyAll must be called without holding any source lock so that callbacks
// can re-enter the store.
func notifyAll(subs []Subscriber) {
	for _, sub := range subs {
		sub.notify()
	}
}
