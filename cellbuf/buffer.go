package cellbuf

import (
	"slices"
	"strings"
)

// Buffer is a full-screen grid of cells, stored row-major. Writes keep wide
// cells whole: overwriting either half of a wide cell blanks the other half.
type Buffer struct {
	width  int
	height int
	cells  []Cell
}

// MaxDimension is the largest width or height of a buffer; command
// positions are 16 bit.
const MaxDimension = 1<<16 - 1

// NewBuffer returns a blank buffer. Each dimension is clamped to
// [0, MaxDimension].
func NewBuffer(width, height int) *Buffer {
	width, height = min(max(width, 0), MaxDimension), min(max(height, 0), MaxDimension)

	b := &Buffer{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	b.Clear()

	return b
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }

func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

func (b *Buffer) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Cell returns the cell at (x, y), or Blank outside the buffer.
func (b *Buffer) Cell(x, y int) Cell {
	if !b.inside(x, y) {
		return Blank
	}
	return b.cells[b.index(x, y)]
}

// Row returns the cells of row y. The slice aliases the buffer.
func (b *Buffer) Row(y int) []Cell {
	if y < 0 || y >= b.height {
		return nil
	}
	start := b.index(0, y)
	return b.cells[start : start+b.width]
}

// Clear resets every cell to Blank.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Blank
	}
}

// Set writes c at (x, y) and returns the number of columns it took. A wide
// cell that does not fit before the right edge is written as a blank.
// Continuation cells cannot be set directly.
func (b *Buffer) Set(x, y int, c Cell) int {
	if !b.inside(x, y) || c.IsContinuation() {
		return 0
	}

	if c.IsWide() && x+1 >= b.width {
		c = blankWith(c.Style)
	}

	b.breakWide(x, y)
	b.cells[b.index(x, y)] = c

	if c.IsWide() {
		b.breakWide(x+1, y)
		b.cells[b.index(x+1, y)] = continuation(c.Style)
		return 2
	}

	return 1
}

// breakWide blanks the other half of a wide cell about to lose the half at
// (x, y).
func (b *Buffer) breakWide(x, y int) {
	i := b.index(x, y)

	switch cur := b.cells[i]; {
	case cur.IsContinuation() && x > 0:
		b.cells[i-1] = blankWith(b.cells[i-1].Style)
	case cur.IsWide() && x+1 < b.width:
		b.cells[i+1] = blankWith(cur.Style)
	}
}

// SetString writes s from (x, y) on one row, one grapheme per cell, and
// returns the number of columns written. Writing stops at the right edge.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	if y < 0 || y >= b.height {
		return 0
	}

	start := x
	for g, w := range Graphemes(s) {
		if x >= b.width {
			break
		}
		if x+w > b.width {
			// half a wide grapheme does not fit
			b.Set(x, y, blankWith(style))
			x++
			break
		}

		if x >= 0 {
			b.Set(x, y, Cell{Content: g, Style: style, Width: uint8(w)})
		}
		x += w
	}

	return x - start
}

// Fill sets every cell of the rectangle to c.
func (b *Buffer) Fill(x, y, width, height int, c Cell) {
	step := max(int(c.Width), 1)

	for row := max(y, 0); row < min(y+height, b.height); row++ {
		for col := max(x, 0); col+step <= min(x+width, b.width); col += step {
			b.Set(col, row, c)
		}
	}
}

func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil {
		return false
	}
	return b.width == other.width &&
		b.height == other.height &&
		slices.Equal(b.cells, other.cells)
}

func (b *Buffer) Clone() *Buffer {
	return &Buffer{
		width:  b.width,
		height: b.height,
		cells:  slices.Clone(b.cells),
	}
}

// String renders the glyphs row by row, without styles.
func (b *Buffer) String() string {
	var sb strings.Builder

	for y := range b.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range b.Row(y) {
			sb.WriteString(c.Content)
		}
	}

	return sb.String()
}
