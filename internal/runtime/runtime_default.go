//go:build !wasm

package runtime

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// Get returns the runtime owned by the calling goroutine, creating it on
// first use.
func Get() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	actual, _ := runtimes.LoadOrStore(gid, r)
	return actual.(*Runtime)
}

// Release forgets the calling goroutine's runtime. Pending microtasks are
// dropped.
func Release() {
	runtimes.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}
