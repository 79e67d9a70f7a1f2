package cellbuf

import "github.com/gdamore/tcell/v2"

// Style is the part of a cell that is not its glyph. Styles are comparable;
// two cells with equal styles can share one terminal write.
type Style struct {
	Fg    tcell.Color
	Bg    tcell.Color
	Attrs tcell.AttrMask
}

// DefaultStyle uses the terminal's own colors and no modifiers.
var DefaultStyle = Style{
	Fg: tcell.ColorDefault,
	Bg: tcell.ColorDefault,
}

func (s Style) Foreground(c tcell.Color) Style {
	s.Fg = c
	return s
}

func (s Style) Background(c tcell.Color) Style {
	s.Bg = c
	return s
}

func (s Style) Bold(on bool) Style          { return s.attr(tcell.AttrBold, on) }
func (s Style) Italic(on bool) Style        { return s.attr(tcell.AttrItalic, on) }
func (s Style) Underline(on bool) Style     { return s.attr(tcell.AttrUnderline, on) }
func (s Style) Reverse(on bool) Style       { return s.attr(tcell.AttrReverse, on) }
func (s Style) Dim(on bool) Style           { return s.attr(tcell.AttrDim, on) }
func (s Style) Blink(on bool) Style         { return s.attr(tcell.AttrBlink, on) }
func (s Style) StrikeThrough(on bool) Style { return s.attr(tcell.AttrStrikeThrough, on) }

func (s Style) attr(a tcell.AttrMask, on bool) Style {
	if on {
		s.Attrs |= a
	} else {
		s.Attrs &^= a
	}
	return s
}

// Has reports whether every modifier in a is set.
func (s Style) Has(a tcell.AttrMask) bool {
	return s.Attrs&a == a
}

// Tcell converts the style for a tcell screen.
func (s Style) Tcell() tcell.Style {
	ts := tcell.StyleDefault.
		Foreground(s.Fg).
		Background(s.Bg).
		Attributes(s.Attrs &^ tcell.AttrUnderline)

	if s.Has(tcell.AttrUnderline) {
		ts = ts.Underline(true)
	}
	return ts
}

// FromTcell is the inverse of Tcell.
func FromTcell(ts tcell.Style) Style {
	fg, bg, attrs := ts.Decompose()
	return Style{Fg: fg, Bg: bg, Attrs: attrs}
}
