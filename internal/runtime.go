package internal

import (
	"log/slog"
)

// Options tune a goroutine's runtime.
type Options struct {
	// MaxFlushIterations bounds the passes of one Flush. Zero keeps the
	// current value.
	MaxFlushIterations int

	// Logger receives effect failures. Nil keeps the current logger.
	Logger *slog.Logger
}

// Runtime holds the per-goroutine reactive state: the tracking stack, the
// current owner and the effect scheduler. Signals are shared across runtimes;
// effects and computeds belong to the runtime that created them.
type Runtime struct {
	tracker   *Tracker
	batcher   *Batcher
	scheduler *Scheduler

	logger    *slog.Logger
	lastFlush FlushStats
}

func NewRuntime() *Runtime {
	return &Runtime{
		tracker:   NewTracker(),
		batcher:   NewBatcher(),
		scheduler: NewScheduler(),
		logger:    slog.Default(),
	}
}

func (r *Runtime) Configure(opts Options) {
	if opts.MaxFlushIterations > 0 {
		r.scheduler.maxIterations = opts.MaxFlushIterations
	}
	if opts.Logger != nil {
		r.logger = opts.Logger
	}
}

// Flush drains the scheduler. Within a batch the flush is deferred to the end
// of the outermost batch.
func (r *Runtime) Flush() (FlushStats, error) {
	if r.batcher.IsBatching() {
		return FlushStats{}, nil
	}

	if !r.HasPending() {
		r.lastFlush = FlushStats{}
		return r.lastFlush, nil
	}

	stats, err := r.scheduler.Flush(r.logger)
	r.lastFlush = stats

	return stats, err
}

func (r *Runtime) LastFlush() FlushStats {
	return r.lastFlush
}

func (r *Runtime) Wake() <-chan struct{} {
	return r.scheduler.Wake()
}

func (r *Runtime) HasPending() bool {
	return r.scheduler.HasPending()
}

func (r *Runtime) Tracker() *Tracker {
	return r.tracker
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) OnCleanup(fn func()) {
	owner := r.CurrentOwner()
	if owner != nil {
		owner.OnCleanup(fn)
	}
}

func (r *Runtime) OnSettled(fn func()) {
	r.scheduler.settled.Enqueue(fn)
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

// report logs an effect failure and hands it to the nearest error handler.
func (r *Runtime) report(e *Effect, err error) {
	r.logger.Warn("effect failed",
		"effect", uint64(e.ID()),
		"error", err,
	)

	if parent := e.Owner.Parent(); parent != nil {
		parent.catch(err)
	}
}
