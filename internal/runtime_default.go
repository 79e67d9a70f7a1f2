//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the runtime of the calling goroutine, creating it on
// first use.
func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// LookupRuntime returns the runtime of the calling goroutine, or nil when the
// goroutine never created one. Read paths use it so that goroutines which
// only read signals leave nothing behind.
func LookupRuntime() *Runtime {
	if r, ok := runtimes.Load(getGID()); ok {
		return r.(*Runtime)
	}
	return nil
}

// ReleaseRuntime forgets the calling goroutine's runtime. Effects it created
// stay subscribed but can no longer be flushed.
func ReleaseRuntime() {
	runtimes.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}
