package internal

// Batcher counts nested batches. Flushes requested while a batch is open are
// deferred to the end of the outermost one.
type Batcher struct {
	depth int
}

func NewBatcher() *Batcher {
	return &Batcher{}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

// Batch runs fn one level deeper and reports whether it closed the
// outermost batch. A panic in fn restores the depth and propagates; the
// writes it made stay queued for the next flush.
func (b *Batcher) Batch(fn func()) (outermost bool) {
	b.depth++
	defer func() { b.depth-- }()

	fn()

	return b.depth == 1
}

func (r *Runtime) NewBatch(fn func()) error {
	if !r.batcher.Batch(fn) {
		return nil
	}

	_, err := r.Flush()
	return err
}
