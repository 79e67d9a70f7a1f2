// Package term hands cell buffer commands to a terminal.
package term

import (
	"sync"

	"github.com/AnatoleLucet/revue/cellbuf"
)

// Sink consumes the commands produced by cellbuf.Diff.
type Sink interface {
	// Size returns the drawable area in cells.
	Size() (width, height int)

	// Clear erases the whole terminal. The next frame is painted in full.
	Clear() error

	Write(cmds []cellbuf.Command) error
}

// MemorySink replays commands onto an in-memory buffer. It is what the
// terminal would show, without a terminal.
type MemorySink struct {
	mu     sync.Mutex
	screen *cellbuf.Buffer
	writes int
	cells  int
}

func NewMemorySink(width, height int) *MemorySink {
	return &MemorySink{screen: cellbuf.NewBuffer(width, height)}
}

func (s *MemorySink) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.screen.Size()
}

// Resize replaces the screen with a blank one of the given size.
func (s *MemorySink) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen = cellbuf.NewBuffer(width, height)
}

func (s *MemorySink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Clear()
	return nil
}

func (s *MemorySink) Write(cmds []cellbuf.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.screen.Apply(cmds)
	s.writes += len(cmds)
	for _, cmd := range cmds {
		s.cells += cmd.Columns()
	}

	return nil
}

// Screen returns a copy of what has been written so far.
func (s *MemorySink) Screen() *cellbuf.Buffer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.screen.Clone()
}

// Written returns the number of commands and cells written so far.
func (s *MemorySink) Written() (commands, cells int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writes, s.cells
}
