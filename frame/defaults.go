package frame

import (
	"github.com/gdamore/tcell/v2"

	"github.com/AnatoleLucet/revue/cellbuf"
	"github.com/AnatoleLucet/revue/tree"
)

// StyleResolver computes the style of one node. Nodes are resolved in
// pre-order, so a node's parent is resolved first.
type StyleResolver interface {
	Resolve(t *tree.Tree, n *tree.Node) any
}

// Layouter places every node of the tree inside a width x height screen with
// Tree.SetRect.
type Layouter interface {
	Layout(t *tree.Tree, width, height int)
}

// Painter draws the tree into a blank buffer.
type Painter interface {
	Paint(buf *cellbuf.Buffer, t *tree.Tree)
}

type StyleFunc func(t *tree.Tree, n *tree.Node) any

func (f StyleFunc) Resolve(t *tree.Tree, n *tree.Node) any { return f(t, n) }

type LayoutFunc func(t *tree.Tree, width, height int)

func (f LayoutFunc) Layout(t *tree.Tree, width, height int) { f(t, width, height) }

type PaintFunc func(buf *cellbuf.Buffer, t *tree.Tree)

func (f PaintFunc) Paint(buf *cellbuf.Buffer, t *tree.Tree) { f(buf, t) }

// AttrStyles resolves a cellbuf.Style from the "fg", "bg" (tcell.Color),
// "bold", "italic", "underline" and "reverse" (bool) attributes, starting
// from the parent's style when the parent's kind passes it down.
type AttrStyles struct{}

func (AttrStyles) Resolve(t *tree.Tree, n *tree.Node) any {
	style := cellbuf.DefaultStyle

	if parent, ok := t.Node(n.Parent); ok && tree.Info(parent.Kind).Inherits {
		if s, ok := parent.Style.(cellbuf.Style); ok {
			style = s
		}
	}

	if c, ok := n.Attrs["fg"].(tcell.Color); ok {
		style = style.Foreground(c)
	}
	if c, ok := n.Attrs["bg"].(tcell.Color); ok {
		style = style.Background(c)
	}
	if on, ok := n.Attrs["bold"].(bool); ok {
		style = style.Bold(on)
	}
	if on, ok := n.Attrs["italic"].(bool); ok {
		style = style.Italic(on)
	}
	if on, ok := n.Attrs["underline"].(bool); ok {
		style = style.Underline(on)
	}
	if on, ok := n.Attrs["reverse"].(bool); ok {
		style = style.Reverse(on)
	}

	return style
}

// StackLayout stacks children top to bottom, each as wide as its parent. A
// text node is one row high, a box as high as its children, unless the node
// has an int "height" attribute. Boxes with an int "indent" attribute shift
// their children right.
type StackLayout struct{}

func (StackLayout) Layout(t *tree.Tree, width, height int) {
	root := t.Root()
	if root == nil {
		return
	}

	place(t, root, tree.Rect{Width: width, Height: min(measure(t, root), height)})
}

func measure(t *tree.Tree, n *tree.Node) int {
	if h, ok := n.Attrs["height"].(int); ok {
		return max(h, 0)
	}
	if n.Kind == tree.KindText {
		return 1
	}

	h := 0
	for child := range t.Children(n.ID) {
		h += measure(t, child)
	}
	return h
}

func place(t *tree.Tree, n *tree.Node, r tree.Rect) {
	t.SetRect(n.ID, r)

	indent, _ := n.Attrs["indent"].(int)
	y := r.Y
	for child := range t.Children(n.ID) {
		h := min(measure(t, child), r.Y+r.Height-y)
		if h < 0 {
			h = 0
		}

		place(t, child, tree.Rect{
			X:      r.X + indent,
			Y:      y,
			Width:  max(r.Width-indent, 0),
			Height: h,
		})
		y += h
	}
}

// TextPainter fills boxes having a "bg" attribute and writes the "text"
// attribute of text nodes, clipped to their rect.
type TextPainter struct{}

func (TextPainter) Paint(buf *cellbuf.Buffer, t *tree.Tree) {
	for n := range t.All() {
		if !n.RectValid || n.Rect.Empty() {
			continue
		}

		style, ok := n.Style.(cellbuf.Style)
		if !ok {
			style = cellbuf.DefaultStyle
		}

		switch n.Kind {
		case tree.KindText:
			paintText(buf, n.Rect, tree.Attr[string](n, "text"), style)
		default:
			if _, ok := n.Attrs["bg"]; ok {
				buf.Fill(n.Rect.X, n.Rect.Y, n.Rect.Width, n.Rect.Height, cellbuf.NewCell(" ", style))
			}
		}
	}
}

func paintText(buf *cellbuf.Buffer, r tree.Rect, s string, style cellbuf.Style) {
	x := r.X
	for g, w := range cellbuf.Graphemes(s) {
		if x+w > r.X+r.Width {
			break
		}
		x += buf.Set(x, r.Y, cellbuf.Cell{Content: g, Style: style, Width: uint8(w)})
	}
}
