package internal

import "sync/atomic"

// NodeID identifies a reactive node (signal, computed or effect) for the
// lifetime of the process.
type NodeID uint64

var lastNodeID atomic.Uint64

func nextNodeID() NodeID {
	return NodeID(lastNodeID.Add(1))
}

type NodeFlags uint32

const (
	FlagDirty NodeFlags = 1 << iota
	FlagFailed
	FlagPending
	FlagRunning
	FlagDisposed
)

// ReactiveNode carries the identity and state flags shared by every node kind.
// Flags are atomic because notifications may arrive from any goroutine.
type ReactiveNode struct {
	id    NodeID
	flags atomic.Uint32
}

func (n *ReactiveNode) ID() NodeID {
	return n.id
}

func (n *ReactiveNode) HasFlag(flag NodeFlags) bool {
	return NodeFlags(n.flags.Load())&flag != 0
}

// AddFlag sets flag and reports whether it was previously unset.
func (n *ReactiveNode) AddFlag(flag NodeFlags) bool {
	for {
		old := n.flags.Load()
		if NodeFlags(old)&flag != 0 {
			return false
		}
		if n.flags.CompareAndSwap(old, old|uint32(flag)) {
			return true
		}
	}
}

// RemoveFlag clears flag and reports whether it was previously set.
func (n *ReactiveNode) RemoveFlag(flag NodeFlags) bool {
	for {
		old := n.flags.Load()
		if NodeFlags(old)&flag == 0 {
			return false
		}
		if n.flags.CompareAndSwap(old, old&^uint32(flag)) {
			return true
		}
	}
}
