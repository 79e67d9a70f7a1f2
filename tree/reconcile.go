package tree

import (
	"slices"

	"github.com/mitchellh/hashstructure/v2"
)

// Changes lists what a reconcile did, each in pre-order.
type Changes struct {
	// Changed holds the nodes needing fresh style and layout: matched nodes
	// whose kind, attributes or children differ, and inserted nodes.
	Changed []ID

	Inserted []ID

	// Removed holds the previous nodes without a match. Their caches are
	// gone with the previous tree.
	Removed []ID
}

func (c Changes) Empty() bool {
	return len(c.Changed) == 0 && len(c.Removed) == 0
}

// Reconcile matches intent against prev, which may be nil, and builds the
// next tree. Siblings are matched in one pass: a keyed intent node matches
// the previous sibling with the same key, an unkeyed one the previous
// unkeyed sibling at the same position among them when the kinds agree.
// Unkeyed siblings moved out of order are therefore removed and inserted
// again.
//
// prev is not modified. A *DuplicateKeyError is returned when siblings share
// a key.
func Reconcile(prev *Tree, intent *Intent) (*Tree, Changes, error) {
	if intent == nil {
		return nil, Changes{}, ErrNoRoot
	}

	r := &reconciler{
		prev: prev,
		next: &Tree{nodes: make(map[ID]*Node, prev.Len())},
	}

	root := childID("", intent, 0)
	if err := r.build("", root, intent); err != nil {
		return nil, Changes{}, err
	}
	r.next.root = root

	for n := range prev.All() {
		if _, ok := r.next.nodes[n.ID]; !ok {
			r.changes.Removed = append(r.changes.Removed, n.ID)
		}
	}

	return r.next, r.changes, nil
}

type reconciler struct {
	prev    *Tree
	next    *Tree
	changes Changes
}

func (r *reconciler) build(parent, id ID, in *Intent) error {
	n := &Node{
		ID:     id,
		Kind:   in.Kind,
		Key:    in.Key,
		Attrs:  in.Attrs,
		Parent: parent,
	}

	r.next.nodes[id] = n
	r.next.order = append(r.next.order, id)

	// nil children are conditionally rendered widgets that rendered nothing
	kids := slices.DeleteFunc(slices.Clone(in.Children), func(c *Intent) bool { return c == nil })

	children, err := childIDs(id, kids)
	if err != nil {
		return err
	}
	n.Children = children

	if h, err := hashstructure.Hash(in.Attrs, hashstructure.FormatV2, nil); err == nil {
		n.hash, n.hashed = h, true
	}

	if old, ok := r.prev.Node(id); ok {
		n.Style = old.Style
		n.Rect = old.Rect

		if changed(old, n) {
			n.Dirty = true
			r.changes.Changed = append(r.changes.Changed, id)
		} else {
			n.RectValid = old.RectValid
		}
	} else {
		n.Dirty = true
		r.changes.Changed = append(r.changes.Changed, id)
		r.changes.Inserted = append(r.changes.Inserted, id)
	}

	for i, child := range kids {
		if err := r.build(id, children[i], child); err != nil {
			return err
		}
	}

	return nil
}

func changed(old, n *Node) bool {
	return old.Kind != n.Kind ||
		!old.hashed || !n.hashed || old.hash != n.hash ||
		!slices.Equal(old.Children, n.Children)
}

func childIDs(parent ID, children []*Intent) ([]ID, error) {
	if len(children) == 0 {
		return nil, nil
	}

	ids := make([]ID, len(children))
	keys := make(map[string]struct{})
	ordinal := 0

	for i, child := range children {
		if child.Key != "" {
			if _, dup := keys[child.Key]; dup {
				return nil, &DuplicateKeyError{Parent: parent, Key: child.Key}
			}
			keys[child.Key] = struct{}{}

			ids[i] = childID(parent, child, 0)
			continue
		}

		ids[i] = childID(parent, child, ordinal)
		ordinal++
	}

	return ids, nil
}
