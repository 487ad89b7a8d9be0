// Package observe is a small object-observation runtime for reactive
// components: an event emitter with ordered, default-aware and wildcard
// delivery, and a keyed reactive State built on top of it.
//
// State changes are reported synchronously per key and, once per tick, as a
// single coalesced "stateChanged" batch. A tick is the unit of work run by
// Run; the batch is delivered when the outermost Run returns, or on Flush.
package observe

import "github.com/AnatoleLucet/observe/internal/runtime"

// Run executes fn as a task on the calling goroutine. Work deferred during
// fn, such as state batches, is delivered when the outermost Run returns.
//
// Each goroutine that writes state or calls Run keeps its own queue until it
// calls Release. Short-lived goroutines should defer Release.
func Run(fn func()) {
	runtime.Get().Run(fn)
}

// Flush delivers the calling goroutine's deferred work now.
func Flush() {
	runtime.Get().Flush()
}

// Pending returns how much deferred work waits on the calling goroutine.
func Pending() int {
	return runtime.Get().Pending()
}

// Release drops the calling goroutine's queue. Work still pending is
// discarded, so call it once the goroutine is done with Run and Flush.
func Release() {
	runtime.Release()
}
