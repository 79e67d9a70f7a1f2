package internal

import (
	"log/slog"
)

const DefaultMaxFlushIterations = 100

// FlushStats summarises one Flush.
type FlushStats struct {
	Passes   int
	Runs     int
	Failures int
}

type Scheduler struct {
	running bool

	maxIterations int

	queue   *EffectQueue
	settled *SettledQueue

	// signalled (without blocking) whenever an effect becomes pending
	wake chan struct{}
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		maxIterations: DefaultMaxFlushIterations,
		queue:         NewEffectQueue(),
		settled:       NewSettledQueue(),
		wake:          make(chan struct{}, 1),
	}
}

func (s *Scheduler) enqueue(e *Effect) {
	s.queue.Enqueue(e)
	s.signal()
}

// signal wakes a waiter on Wake without blocking.
func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Flush runs pending effects until none are left. Effects made pending while
// flushing run in a later pass of the same flush. Each pass runs an effect at
// most once, however many of its dependencies were written.
func (s *Scheduler) Flush(logger *slog.Logger) (FlushStats, error) {
	var stats FlushStats

	// an effect calling Flush is absorbed by the flush already running
	if s.running {
		return stats, nil
	}

	s.running = true
	defer func() { s.running = false }()

	for {
		batch := s.queue.Take()
		if len(batch) == 0 {
			break
		}

		if stats.Passes >= s.maxIterations {
			pending := make([]NodeID, 0, len(batch))
			for _, e := range batch {
				if e.RemoveFlag(FlagPending) {
					pending = append(pending, e.ID())
				}
			}

			return stats, &DivergenceError{Iterations: stats.Passes, Pending: pending}
		}

		stats.Passes++

		for _, e := range batch {
			if !e.RemoveFlag(FlagPending) || e.HasFlag(FlagDisposed) {
				continue
			}

			stats.Runs++
			if err := e.run(); err != nil {
				stats.Failures++
				e.runtime.report(e, err)
			}
		}
	}

	s.settled.Run()

	if logger != nil && stats.Runs > 0 {
		logger.Debug("flushed effects",
			"passes", stats.Passes,
			"runs", stats.Runs,
			"failures", stats.Failures,
		)
	}

	return stats, nil
}

// Wake is signalled whenever an effect of this scheduler becomes pending or a
// computed created by its runtime turns dirty.
func (s *Scheduler) Wake() <-chan struct{} {
	return s.wake
}

// HasPending reports whether a flush has anything to do.
func (s *Scheduler) HasPending() bool {
	return s.queue.Len() > 0 || s.settled.Len() > 0
}
