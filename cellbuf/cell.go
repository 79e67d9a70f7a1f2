package cellbuf

// Cell is one terminal column. A wide grapheme occupies a lead cell of
// Width 2 followed by a continuation cell of Width 0 with no content and the
// lead's style.
type Cell struct {
	Content string
	Style
	Width uint8
}

// Blank is an empty default-styled cell.
var Blank = Cell{Content: " ", Style: DefaultStyle, Width: 1}

// NewCell measures content. Content wider than two columns is clamped to two.
func NewCell(content string, style Style) Cell {
	if content == "" {
		content = " "
	}

	w := StringWidth(content)
	switch {
	case w <= 1:
		w = 1
	case w > 2:
		w = 2
	}

	return Cell{Content: content, Style: style, Width: uint8(w)}
}

// IsContinuation reports whether c is the right half of a wide cell.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

func (c Cell) IsWide() bool {
	return c.Width == 2
}

func continuation(style Style) Cell {
	return Cell{Style: style}
}

// blankWith is a space keeping only the background of style, used where a
// wide cell had to be broken.
func blankWith(style Style) Cell {
	return Cell{Content: " ", Style: Style{Fg: DefaultStyle.Fg, Bg: style.Bg}, Width: 1}
}
