package term

import (
	"bufio"
	"io"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/gdamore/tcell/v2"

	"github.com/AnatoleLucet/revue/cellbuf"
)

// ANSISink writes commands as escape sequences to w. Cursor moves and style
// changes are only emitted when the previous write did not leave the
// terminal in the right state.
type ANSISink struct {
	mu sync.Mutex
	w  *bufio.Writer

	width  int
	height int

	cursorX     int
	cursorY     int
	cursorValid bool

	style      cellbuf.Style
	styleValid bool
}

func NewANSISink(w io.Writer, width, height int) *ANSISink {
	return &ANSISink{
		w:      bufio.NewWriterSize(w, 64*1024),
		width:  width,
		height: height,
	}
}

func (s *ANSISink) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.width, s.height
}

// Resize records a new terminal size. The cursor position is forgotten.
func (s *ANSISink) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.width, s.height = width, height
	s.cursorValid = false
}

func (s *ANSISink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.w.WriteString(ansi.ResetStyle)
	s.w.WriteString(ansi.EraseEntireScreen)
	s.w.WriteString(ansi.CursorHomePosition)

	s.cursorX, s.cursorY, s.cursorValid = 0, 0, true
	s.styleValid = false

	return s.w.Flush()
}

func (s *ANSISink) Write(cmds []cellbuf.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(cmds) == 0 {
		return nil
	}

	for _, cmd := range cmds {
		x, y := int(cmd.X), int(cmd.Y)

		if !s.cursorValid || x != s.cursorX || y != s.cursorY {
			s.w.WriteString(ansi.CursorPosition(x+1, y+1))
		}

		if !s.styleValid || cmd.Style != s.style {
			s.w.WriteString(sgr(cmd.Style).String())
			s.style, s.styleValid = cmd.Style, true
		}

		for _, cell := range cmd.Cells {
			s.w.WriteString(cell.Content)
		}

		s.cursorX, s.cursorY, s.cursorValid = x+cmd.Columns(), y, true
	}

	s.w.WriteString(ansi.ResetStyle)
	s.styleValid = false

	return s.w.Flush()
}

// sgr is the full SGR sequence for style, starting from a reset so that it
// does not depend on the previous style.
func sgr(style cellbuf.Style) ansi.Style {
	st := ansi.Style{}.Reset()

	if style.Has(tcell.AttrBold) {
		st = st.Bold()
	}
	if style.Has(tcell.AttrDim) {
		st = st.Faint()
	}
	if style.Has(tcell.AttrItalic) {
		st = st.Italic(true)
	}
	if style.Has(tcell.AttrUnderline) {
		st = st.Underline(true)
	}
	if style.Has(tcell.AttrBlink) {
		st = st.Blink(true)
	}
	if style.Has(tcell.AttrReverse) {
		st = st.Reverse(true)
	}
	if style.Has(tcell.AttrStrikeThrough) {
		st = st.Strikethrough(true)
	}

	if c := color(style.Fg); c != nil {
		st = st.ForegroundColor(c)
	}
	if c := color(style.Bg); c != nil {
		st = st.BackgroundColor(c)
	}

	return st
}

// color maps a tcell color to an ANSI one. The default color, and colors
// tcell reserves for itself, map to nil.
func color(c tcell.Color) ansi.Color {
	switch {
	case !c.Valid():
		return nil
	case c.IsRGB():
		r, g, b := c.RGB()
		return ansi.RGBColor{R: uint8(r), G: uint8(g), B: uint8(b)}
	}

	index := int(c - tcell.ColorValid)
	switch {
	case index < 0 || index > 255:
		return nil
	case index < 16:
		return ansi.BasicColor(index)
	default:
		return ansi.IndexedColor(index)
	}
}
