package tree

// Attrs are the properties a widget gives a node. Values should be
// comparable data; nodes holding values that cannot be fingerprinted, such as
// functions, are treated as changed on every reconcile.
type Attrs map[string]any

// Intent is the tree widgets produce each frame.
type Intent struct {
	Kind     Kind
	Key      string
	Attrs    Attrs
	Children []*Intent
}

func New(kind Kind, children ...*Intent) *Intent {
	return &Intent{Kind: kind, Children: children}
}

// Box groups children.
func Box(children ...*Intent) *Intent {
	return New(KindBox, children...)
}

// Text is a leaf holding s in its "text" attribute.
func Text(s string) *Intent {
	return New(KindText).With("text", s)
}

// WithKey gives the node an explicit identity among its siblings.
func (i *Intent) WithKey(key string) *Intent {
	i.Key = key
	return i
}

func (i *Intent) With(name string, value any) *Intent {
	if i.Attrs == nil {
		i.Attrs = make(Attrs)
	}
	i.Attrs[name] = value
	return i
}

// Append adds children and returns i.
func (i *Intent) Append(children ...*Intent) *Intent {
	i.Children = append(i.Children, children...)
	return i
}
