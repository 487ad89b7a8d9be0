//go:build wasm

package runtime

import "sync"

// wasm runs a single thread, so every caller shares one runtime.
var shared = sync.OnceValue(NewRuntime)

func Get() *Runtime {
	return shared()
}

// Release drains nothing and keeps the shared runtime.
func Release() {}
