package tree

import (
	"iter"
	"slices"
	"strconv"
	"strings"
)

// ID identifies a node across frames. It is the path of the node from the
// root: keyed nodes contribute @"key", unkeyed nodes kind#n where n is the
// position of the node among its unkeyed siblings.
type ID string

func childID(parent ID, intent *Intent, ordinal int) ID {
	var sb strings.Builder
	sb.WriteString(string(parent))
	sb.WriteByte('/')

	if intent.Key != "" {
		sb.WriteByte('@')
		sb.WriteString(strconv.Quote(intent.Key))
	} else {
		sb.WriteString(string(intent.Kind))
		sb.WriteByte('#')
		sb.WriteString(strconv.Itoa(ordinal))
	}

	return ID(sb.String())
}

// Rect is the area a node occupies on screen, in cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Node is a reconciled node. Style and Rect are caches owned by the style
// resolver and the layout engine; reconciliation keeps them for matched
// nodes and invalidates the rect of changed ones.
type Node struct {
	ID       ID
	Kind     Kind
	Key      string
	Attrs    Attrs
	Parent   ID
	Children []ID

	Style     any
	Rect      Rect
	RectValid bool

	// Dirty is set on nodes changed or inserted by the last reconcile.
	Dirty bool

	hash   uint64
	hashed bool
}

// Attr returns the attribute name, or the zero value of T when missing or of
// another type.
func Attr[T any](n *Node, name string) T {
	v, _ := n.Attrs[name].(T)
	return v
}

// Tree is the result of a reconcile.
type Tree struct {
	root  ID
	nodes map[ID]*Node
	order []ID
}

func (t *Tree) Root() *Node {
	if t == nil {
		return nil
	}
	return t.nodes[t.root]
}

func (t *Tree) Node(id ID) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	n, ok := t.nodes[id]
	return n, ok
}

func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// All yields the nodes in pre-order.
func (t *Tree) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if t == nil {
			return
		}
		for _, id := range t.order {
			if !yield(t.nodes[id]) {
				return
			}
		}
	}
}

// IDs returns the node ids in pre-order.
func (t *Tree) IDs() []ID {
	if t == nil {
		return nil
	}
	return slices.Clone(t.order)
}

// Children yields the children of id in order.
func (t *Tree) Children(id ID) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n, ok := t.Node(id)
		if !ok {
			return
		}
		for _, child := range n.Children {
			if !yield(t.nodes[child]) {
				return
			}
		}
	}
}

// Descendants yields the nodes below id in pre-order.
func (t *Tree) Descendants(id ID) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		var walk func(ID) bool
		walk = func(id ID) bool {
			n, ok := t.Node(id)
			if !ok {
				return true
			}
			for _, child := range n.Children {
				if !yield(t.nodes[child]) || !walk(child) {
					return false
				}
			}
			return true
		}
		walk(id)
	}
}

// SetRect records the layout of id.
func (t *Tree) SetRect(id ID, r Rect) {
	if n, ok := t.Node(id); ok {
		n.Rect = r
		n.RectValid = true
	}
}

// SetStyle records the resolved style of id.
func (t *Tree) SetStyle(id ID, style any) {
	if n, ok := t.Node(id); ok {
		n.Style = style
	}
}
