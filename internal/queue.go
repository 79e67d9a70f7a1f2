package internal

import (
	"slices"
	"sync"
)

// EffectQueue collects effects that became pending. Writers on any goroutine
// enqueue; only the owning runtime drains.
type EffectQueue struct {
	mu      sync.Mutex
	effects []*Effect
}

func NewEffectQueue() *EffectQueue {
	return &EffectQueue{}
}

func (q *EffectQueue) Enqueue(e *Effect) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.effects = append(q.effects, e)
}

// Take empties the queue and returns its content in creation order.
func (q *EffectQueue) Take() []*Effect {
	q.mu.Lock()
	effects := q.effects
	q.effects = nil
	q.mu.Unlock()

	slices.SortFunc(effects, func(a, b *Effect) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		}
		return 0
	})

	return effects
}

func (q *EffectQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.effects)
}

type SettledQueue struct {
	callbacks []func()
}

func NewSettledQueue() *SettledQueue {
	return &SettledQueue{
		callbacks: make([]func(), 0),
	}
}

func (q *SettledQueue) Enqueue(fn func()) {
	q.callbacks = append(q.callbacks, fn)
}

func (q *SettledQueue) Len() int {
	return len(q.callbacks)
}

func (q *SettledQueue) Run() {
	callbacks := q.callbacks
	q.callbacks = nil

	for _, cb := range callbacks {
		cb()
	}
}
