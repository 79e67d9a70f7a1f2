package tree

import "sync"

// Kind is the stable type tag of a node. Two nodes can only be matched when
// their kinds are equal.
type Kind string

const (
	KindBox  Kind = "box"
	KindText Kind = "text"
)

// KindInfo describes how nodes of a kind take part in styling.
type KindInfo struct {
	// Inherits reports whether the children of such a node inherit its
	// style, so that restyling it means restyling its subtree.
	Inherits bool
}

var (
	kindsMu sync.RWMutex
	kinds   = map[Kind]KindInfo{
		KindBox:  {Inherits: true},
		KindText: {Inherits: true},
	}
)

// Register declares a kind. Registering a kind again replaces its info.
func Register(kind Kind, info KindInfo) {
	kindsMu.Lock()
	defer kindsMu.Unlock()

	kinds[kind] = info
}

// Info returns the registered info of kind. Unregistered kinds inherit.
func Info(kind Kind) KindInfo {
	kindsMu.RLock()
	defer kindsMu.RUnlock()

	if info, ok := kinds[kind]; ok {
		return info
	}
	return KindInfo{Inherits: true}
}
