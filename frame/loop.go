// Package frame runs the per-frame pipeline: flush effects, build the intent
// tree, reconcile it, restyle and lay out, paint, diff against the previous
// frame and write the difference to a terminal sink.
package frame

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/AnatoleLucet/revue"
	"github.com/AnatoleLucet/revue/cellbuf"
	"github.com/AnatoleLucet/revue/term"
	"github.com/AnatoleLucet/revue/tree"
)

var ErrNoBuild = errors.New("frame loop needs a build function")

// BuildFunc produces the intent tree. Signals it reads decide when it runs
// again.
type BuildFunc func() *tree.Intent

// Event is input handed to the loop's handler before the next frame.
type Event any

type Option func(*Loop)

func WithStyles(s StyleResolver) Option { return func(l *Loop) { l.styles = s } }
func WithLayout(lay Layouter) Option    { return func(l *Loop) { l.layout = lay } }
func WithPainter(p Painter) Option      { return func(l *Loop) { l.painter = p } }
func WithSink(s term.Sink) Option       { return func(l *Loop) { l.sink = s } }

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithHandler sets the function receiving events in Run.
func WithHandler(h func(Event)) Option {
	return func(l *Loop) { l.handler = h }
}

// Stats describes one frame.
type Stats struct {
	// Skipped is set when nothing changed since the previous frame.
	Skipped bool

	Flush revue.FlushStats

	Changed  int
	Inserted int
	Removed  int
	Styled   int

	Commands int
	Cells    int

	Duration time.Duration
}

// Loop owns the frame state. It belongs to the goroutine that created it:
// effects and the build computation live in that goroutine's runtime.
type Loop struct {
	cfg    Config
	logger *slog.Logger

	styles  StyleResolver
	layout  Layouter
	painter Painter
	sink    term.Sink
	handler func(Event)

	owner  *revue.Owner
	intent *revue.Computed[*tree.Intent]

	tree   *tree.Tree
	front  *cellbuf.Buffer
	width  int
	height int

	invalid atomic.Bool
}

// New prepares a loop. Without options it styles from attributes, stacks
// nodes vertically, paints text and renders into an 80x24 memory sink.
func New(cfg Config, build BuildFunc, opts ...Option) (*Loop, error) {
	if build == nil {
		return nil, ErrNoBuild
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Loop{
		cfg:     cfg,
		logger:  slog.Default(),
		styles:  AttrStyles{},
		layout:  StackLayout{},
		painter: TextPainter{},
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.sink == nil {
		l.sink = term.NewMemorySink(80, 24)
	}

	revue.Configure(revue.Options{
		MaxFlushIterations: cfg.MaxFlushIterations,
		Logger:             l.logger,
	})
	cellbuf.SetAmbiguousWide(cfg.AmbiguousWide)

	l.owner = revue.NewOwner()
	err := l.owner.Run(func() error {
		l.intent = revue.NewComputed[*tree.Intent](build)
		return nil
	})
	if err != nil {
		l.owner.Dispose()
		return nil, fmt.Errorf("create build computation: %w", err)
	}

	// the terminal content is unknown until the first frame clears it
	l.invalid.Store(true)

	return l, nil
}

// Invalidate makes the next frame clear the sink and repaint everything. It
// may be called from any goroutine.
func (l *Loop) Invalidate() {
	l.invalid.Store(true)
}

// Tree returns the tree of the last rendered frame.
func (l *Loop) Tree() *tree.Tree {
	return l.tree
}

// Close disposes the build computation and every effect created under the
// loop's owner.
func (l *Loop) Close() {
	l.owner.Dispose()
}

// Owner is the scope of the loop; effects created in its Run are disposed
// by Close.
func (l *Loop) Owner() *revue.Owner {
	return l.owner
}

// Frame renders one frame. When the frame fails, nothing is written and
// the previous frame stays current.
func (l *Loop) Frame() (Stats, error) {
	start := time.Now()

	stats, err := l.frame()
	if err != nil {
		framesTotal.WithLabelValues("failed").Inc()
		return stats, err
	}

	if stats.Skipped {
		framesTotal.WithLabelValues("skipped").Inc()
		return stats, nil
	}

	stats.Duration = time.Since(start)

	framesTotal.WithLabelValues("rendered").Inc()
	frameDuration.Observe(stats.Duration.Seconds())
	changedNodes.Observe(float64(stats.Changed))
	commandsWritten.Add(float64(stats.Commands))
	cellsWritten.Add(float64(stats.Cells))

	l.logger.Debug("rendered frame",
		"changed", stats.Changed,
		"styled", stats.Styled,
		"commands", stats.Commands,
		"cells", stats.Cells,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (l *Loop) frame() (Stats, error) {
	var stats Stats

	err := revue.Flush()
	stats.Flush = revue.LastFlush()
	effectRuns.Add(float64(stats.Flush.Runs))
	if err != nil {
		return stats, fmt.Errorf("flush effects: %w", err)
	}

	width, height := l.sink.Size()
	resized := width != l.width || height != l.height
	repaint := resized || l.invalid.Load()

	if l.tree != nil && !repaint && !l.intent.Dirty() {
		stats.Skipped = true
		return stats, nil
	}

	intent, err := l.intent.Get()
	if err != nil {
		return stats, fmt.Errorf("build intent tree: %w", err)
	}

	next, changes, err := tree.Reconcile(l.tree, intent)
	if err != nil {
		return stats, fmt.Errorf("reconcile: %w", err)
	}

	stats.Changed = len(changes.Changed)
	stats.Inserted = len(changes.Inserted)
	stats.Removed = len(changes.Removed)
	stats.Styled = l.restyle(next, changes)

	l.layout.Layout(next, width, height)

	back := cellbuf.NewBuffer(width, height)
	l.painter.Paint(back, next)

	prev := l.front
	if repaint {
		if resized {
			l.logger.Debug("terminal resized", "width", width, "height", height)
		}
		if err := l.sink.Clear(); err != nil {
			return stats, fmt.Errorf("clear terminal: %w", err)
		}
		prev = cellbuf.NewBuffer(width, height)
	}

	cmds := cellbuf.Diff(prev, back)
	if err := l.sink.Write(cmds); err != nil {
		// the terminal is in an unknown state
		l.invalid.Store(true)
		return stats, fmt.Errorf("write terminal: %w", err)
	}

	stats.Commands = len(cmds)
	for _, cmd := range cmds {
		stats.Cells += cmd.Columns()
	}

	l.tree = next
	l.front = back
	l.width, l.height = width, height
	if repaint {
		l.invalid.Store(false)
	}

	return stats, nil
}

// restyle resolves the styles of changed nodes and, when styles are
// inherited, of their descendants. It returns the number of nodes resolved.
func (l *Loop) restyle(t *tree.Tree, changes tree.Changes) int {
	if len(changes.Changed) == 0 {
		return 0
	}

	pending := make(map[tree.ID]struct{}, len(changes.Changed))
	for _, id := range changes.Changed {
		pending[id] = struct{}{}

		n, _ := t.Node(id)
		if !l.cfg.InheritStyles || !tree.Info(n.Kind).Inherits {
			continue
		}
		for d := range t.Descendants(id) {
			pending[d.ID] = struct{}{}
		}
	}

	for n := range t.All() {
		if _, ok := pending[n.ID]; ok {
			n.Style = l.styles.Resolve(t, n)
		}
	}

	return len(pending)
}

// Run renders frames until ctx is done: after each event, whenever an effect
// becomes pending and on every tick. Frame errors are logged and the loop
// goes on. Run must be called on the goroutine that created the loop.
func (l *Loop) Run(ctx context.Context, events <-chan Event) error {
	var tick <-chan time.Time
	if l.cfg.TickInterval.Duration > 0 {
		ticker := time.NewTicker(l.cfg.TickInterval.Duration)
		defer ticker.Stop()
		tick = ticker.C
	}

	l.render()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if l.handler != nil {
				l.handler(ev)
			}

		case <-revue.Pending():
		case <-tick:
		}

		l.render()
	}
}

func (l *Loop) render() {
	if _, err := l.Frame(); err != nil {
		l.logger.Error("frame failed", "error", err)
	}
}
