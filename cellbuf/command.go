package cellbuf

import "strings"

// Command is one contiguous terminal write: a run of cells sharing one style,
// starting at (X, Y). Wide cells are followed by their continuation cell.
type Command struct {
	X, Y  uint16
	Style Style
	Cells []Cell
}

// Columns is the number of terminal columns the command covers.
func (c Command) Columns() int {
	return len(c.Cells)
}

// Text is the glyphs written by the command.
func (c Command) Text() string {
	var sb strings.Builder
	for _, cell := range c.Cells {
		sb.WriteString(cell.Content)
	}
	return sb.String()
}

// Apply replays cmds onto b. Cells outside the buffer are dropped.
func (b *Buffer) Apply(cmds []Command) {
	for _, cmd := range cmds {
		x, y := int(cmd.X), int(cmd.Y)
		for i, cell := range cmd.Cells {
			if b.inside(x+i, y) {
				b.cells[b.index(x+i, y)] = cell
			}
		}
	}
}
